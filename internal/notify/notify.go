// Package notify emits ephemeral user-visible status messages, falling back
// to console output when no notification service is available.
package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/PieterBecking/whisper-app/internal/platform"
)

// Level classifies a notification
type Level int

const (
	// Info is a neutral status update
	Info Level = iota
	// Success reports a completed cycle
	Success
	// Error reports a failed cycle
	Error
)

// Notifier sends status notifications. Notify never fails from the caller's
// perspective: when the OS notifier is unavailable or errors, the message is
// printed to the console instead.
type Notifier struct {
	profile platform.Profile
	appName string
	enabled bool
	console io.Writer

	// runTool is an injection point for tests
	runTool func(name string, args ...string) error
}

// New creates a notifier for the resolved platform profile. When enabled is
// false every message goes straight to the console.
func New(profile platform.Profile, appName string, enabled bool) *Notifier {
	return &Notifier{
		profile: profile,
		appName: appName,
		enabled: enabled,
		console: os.Stdout,
		runTool: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Notify delivers one status message at the given level
func (n *Notifier) Notify(level Level, message string) {
	if !n.enabled {
		n.toConsole(message)
		return
	}

	switch n.profile.Notifier {
	case platform.NotifyOSAScript:
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			escapeAppleScript(message), escapeAppleScript(n.appName))
		if err := n.runTool("osascript", "-e", script); err != nil {
			n.toConsole(message)
		}
	case platform.NotifyNotifySend:
		urgency := "normal"
		if level == Error {
			urgency = "critical"
		}
		if err := n.runTool("notify-send", "--app-name="+n.appName, "--urgency="+urgency, n.appName, message); err != nil {
			n.toConsole(message)
		}
	default:
		n.toConsole(message)
	}
}

// InfoMsg sends an informational notification
func (n *Notifier) InfoMsg(message string) { n.Notify(Info, message) }

// SuccessMsg sends a success notification
func (n *Notifier) SuccessMsg(message string) { n.Notify(Success, message) }

// ErrorMsg sends an error notification
func (n *Notifier) ErrorMsg(message string) { n.Notify(Error, message) }

// toConsole is the always-available fallback; it must never fail
func (n *Notifier) toConsole(message string) {
	fmt.Fprintf(n.console, "🔔 %s: %s\n", n.appName, message)
}

// escapeAppleScript escapes special characters for an AppleScript string
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
