package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OS identifies the host operating system.
type OS int

const (
	// Darwin is macOS
	Darwin OS = iota
	// Linux is any Linux distribution
	Linux
	// Unsupported is anything else (the app degrades, it does not crash)
	Unsupported
)

// String returns the string representation of the OS
func (o OS) String() string {
	switch o {
	case Darwin:
		return "macOS"
	case Linux:
		return "Linux"
	default:
		return "Unsupported"
	}
}

// Session identifies the Linux windowing session type.
type Session int

const (
	// SessionNone applies to macOS and unknown sessions
	SessionNone Session = iota
	// X11 session
	X11
	// Wayland session
	Wayland
)

// String returns the string representation of the session type
func (s Session) String() string {
	switch s {
	case X11:
		return "X11"
	case Wayland:
		return "Wayland"
	default:
		return "N/A"
	}
}

// PasteTool identifies the mechanism used to synthesize a paste keystroke.
type PasteTool int

const (
	// PasteNone means no paste mechanism is available
	PasteNone PasteTool = iota
	// PasteAppleScript uses the macOS automation bridge (Cmd+V)
	PasteAppleScript
	// PasteXdotool uses xdotool (X11)
	PasteXdotool
	// PasteYdotool uses ydotool (Wayland)
	PasteYdotool
)

// String returns the string representation of the paste tool
func (p PasteTool) String() string {
	switch p {
	case PasteAppleScript:
		return "AppleScript"
	case PasteXdotool:
		return "xdotool"
	case PasteYdotool:
		return "ydotool"
	default:
		return "none"
	}
}

// NotifyTool identifies the mechanism used for user-visible notifications.
type NotifyTool int

const (
	// NotifyConsole prints to stdout (always-available fallback)
	NotifyConsole NotifyTool = iota
	// NotifyOSAScript uses the macOS notification center
	NotifyOSAScript
	// NotifyNotifySend uses notify-send (libnotify)
	NotifyNotifySend
)

// String returns the string representation of the notify tool
func (n NotifyTool) String() string {
	switch n {
	case NotifyOSAScript:
		return "native"
	case NotifyNotifySend:
		return "notify-send"
	default:
		return "console"
	}
}

// Profile is the capability set resolved once at startup. It is immutable
// for the process lifetime; every platform-conditional component takes it
// as a parameter instead of branching on the OS itself.
type Profile struct {
	OS        OS
	Session   Session
	PasteTool PasteTool
	Notifier  NotifyTool
	Pretty    string // display name for the startup banner
}

// Resolve detects the host capabilities. It never fails: an unsupported
// platform yields a profile with PasteNone and console notifications so the
// rest of the app degrades instead of crashing.
func Resolve() Profile {
	return resolve(runtime.GOOS, os.Getenv, exec.LookPath)
}

// resolve is the injectable core of Resolve. Detection only reads the
// environment and probes PATH; it has no other side effects.
func resolve(goos string, getenv func(string) string, lookPath func(string) (string, error)) Profile {
	has := func(tool string) bool {
		_, err := lookPath(tool)
		return err == nil
	}

	switch goos {
	case "darwin":
		return Profile{
			OS:        Darwin,
			Session:   SessionNone,
			PasteTool: PasteAppleScript,
			Notifier:  NotifyOSAScript,
			Pretty:    "macOS",
		}

	case "linux":
		p := Profile{OS: Linux, Pretty: linuxPrettyName()}

		p.Session = detectSession(getenv)

		// ydotool is the only option on Wayland; on X11 prefer xdotool but
		// accept ydotool if it is the only tool installed.
		switch {
		case p.Session == Wayland && has("ydotool"):
			p.PasteTool = PasteYdotool
		case has("xdotool"):
			p.PasteTool = PasteXdotool
		case has("ydotool"):
			p.PasteTool = PasteYdotool
		default:
			p.PasteTool = PasteNone
		}

		if has("notify-send") {
			p.Notifier = NotifyNotifySend
		} else {
			p.Notifier = NotifyConsole
		}
		return p

	default:
		return Profile{
			OS:        Unsupported,
			Session:   SessionNone,
			PasteTool: PasteNone,
			Notifier:  NotifyConsole,
			Pretty:    goos,
		}
	}
}

// detectSession determines the Linux session type from the environment
func detectSession(getenv func(string) string) Session {
	switch strings.ToLower(getenv("XDG_SESSION_TYPE")) {
	case "x11":
		return X11
	case "wayland":
		return Wayland
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return Wayland
	}
	if getenv("DISPLAY") != "" {
		return X11
	}
	return SessionNone
}

// linuxPrettyName reads the distribution name from /etc/os-release
func linuxPrettyName() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "Linux"
	}
	var name string
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "PRETTY_NAME":
			return value
		case "NAME":
			name = value
		}
	}
	if name != "" {
		return name
	}
	return "Linux"
}

// MissingLinuxTools returns the names of the Linux helper tools that are
// not installed, for startup guidance. Empty on macOS.
func MissingLinuxTools(p Profile) []string {
	if p.OS != Linux {
		return nil
	}
	var missing []string
	if p.PasteTool == PasteNone {
		missing = append(missing, "xdotool or ydotool")
	}
	if p.Notifier == NotifyConsole {
		missing = append(missing, "notify-send")
	}
	return missing
}
