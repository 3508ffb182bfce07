package hotkey

import (
	"runtime"
	"testing"

	"golang.design/x/hotkey"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Key != "Space" {
		t.Errorf("Expected Space key, got %q", config.Key)
	}
	if !config.Shift {
		t.Error("Expected Shift in default shortcut")
	}
	if runtime.GOOS == "darwin" {
		if !config.Cmd || config.Ctrl {
			t.Errorf("Expected Cmd+Shift+Space on macOS, got %s", config)
		}
	} else {
		if !config.Ctrl || config.Cmd {
			t.Errorf("Expected Ctrl+Shift+Space, got %s", config)
		}
	}
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{"ctrl shift space", Config{Ctrl: true, Shift: true, Key: "Space"}, "Ctrl+Shift+Space"},
		{"cmd shift space", Config{Cmd: true, Shift: true, Key: "Space"}, "Shift+Cmd+Space"},
		{"all modifiers", Config{Ctrl: true, Shift: true, Alt: true, Cmd: true, Key: "V"}, "Ctrl+Shift+Alt+Cmd+V"},
		{"bare key", Config{Key: "Escape"}, "Escape"},
		{"empty key defaults to space", Config{Ctrl: true}, "Ctrl+Space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestKeyFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected hotkey.Key
	}{
		{"Space", hotkey.KeySpace},
		{"A", hotkey.KeyA},
		{"Z", hotkey.KeyZ},
		{"5", hotkey.Key5},
		{"Escape", hotkey.KeyEscape},
		{"Return", hotkey.KeyReturn},
		{"Tab", hotkey.KeyTab},
		{"unknown-falls-back", hotkey.KeySpace},
		{"", hotkey.KeySpace},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := keyFromString(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestModifiers(t *testing.T) {
	// Every flagged modifier must contribute exactly one mask
	config := Config{Ctrl: true, Shift: true, Alt: true, Cmd: true}
	if got := len(config.modifiers()); got != 4 {
		t.Errorf("Expected 4 modifiers, got %d", got)
	}

	config = Config{Shift: true}
	if got := len(config.modifiers()); got != 1 {
		t.Errorf("Expected 1 modifier, got %d", got)
	}

	if got := len(Config{}.modifiers()); got != 0 {
		t.Errorf("Expected no modifiers, got %d", got)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := New()

	if m.IsRunning() {
		t.Error("New manager should not be running")
	}
	if m.Events() == nil {
		t.Error("Events channel should exist before Register")
	}

	// Close before Register is a no-op
	if err := m.Close(); err != nil {
		t.Errorf("Close on idle manager failed: %v", err)
	}
}

// Note: Register binds a real OS hotkey and needs a display server plus
// accessibility permission; exercised manually, not in unit tests.
