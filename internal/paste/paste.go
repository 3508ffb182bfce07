// Package paste delivers transcribed text to the OS input stream by setting
// the clipboard and synthesizing the platform paste keystroke.
package paste

import (
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/PieterBecking/whisper-app/internal/platform"
)

var (
	// ErrNoPasteTool means the platform has no key-simulation mechanism.
	// The clipboard is still set so the user can paste manually.
	ErrNoPasteTool = errors.New("no paste tool available")

	// ErrPasteFailed means the OS automation layer rejected the keystroke
	ErrPasteFailed = errors.New("paste keystroke failed")
)

// ydotool wants raw input event codes: 29=LeftCtrl, 47=V, suffix 1=down 0=up
var ydotoolPasteChord = []string{"key", "29:1", "47:1", "47:0", "29:0"}

// Dispatcher pastes text at the current focus. It is stateless apart from
// the immutable platform profile; delivery is fire-and-forget best-effort
// and targets wherever focus is at paste time.
type Dispatcher struct {
	profile platform.Profile
	settle  time.Duration

	// Injection points for tests; defaults drive the real OS.
	setClipboard func(text string) error
	keyTap       func(key string, modifiers ...interface{}) error
	runTool      func(name string, args ...string) error
}

// New creates a paste dispatcher for the resolved platform profile
func New(profile platform.Profile) *Dispatcher {
	return &Dispatcher{
		profile:      profile,
		settle:       100 * time.Millisecond,
		setClipboard: robotgo.WriteAll,
		keyTap:       robotgo.KeyTap,
		runTool: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Paste sets the clipboard to text and sends the platform paste chord.
// The clipboard is set even when no paste tool exists (manual-paste
// fallback); in that case ErrNoPasteTool is returned without attempting
// any keystroke.
func (d *Dispatcher) Paste(text string) error {
	if err := d.setClipboard(text); err != nil {
		return fmt.Errorf("%w: failed to set clipboard: %v", ErrPasteFailed, err)
	}

	if d.profile.PasteTool == platform.PasteNone {
		return ErrNoPasteTool
	}

	// Give the clipboard owner a moment before the keystroke lands
	time.Sleep(d.settle)

	switch d.profile.PasteTool {
	case platform.PasteAppleScript:
		if err := d.keyTap("v", "cmd"); err != nil {
			return fmt.Errorf("%w: %v", ErrPasteFailed, err)
		}
	case platform.PasteXdotool:
		if err := d.runTool("xdotool", "key", "ctrl+v"); err != nil {
			return fmt.Errorf("%w: xdotool: %v", ErrPasteFailed, err)
		}
	case platform.PasteYdotool:
		if err := d.runTool("ydotool", ydotoolPasteChord...); err != nil {
			return fmt.Errorf("%w: ydotool: %v", ErrPasteFailed, err)
		}
	}

	return nil
}
