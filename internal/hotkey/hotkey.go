package hotkey

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// Event is a single Toggle press of the global hotkey. The same event both
// starts and stops recording; the session state machine disambiguates by
// its current state.
type Event struct{}

// Config describes a key combination in platform-neutral terms. The
// mapping to OS modifier masks lives in the per-platform files.
type Config struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Cmd   bool
	Key   string // e.g. "Space"
}

// DefaultConfig returns the platform default shortcut:
// Cmd+Shift+Space on macOS, Ctrl+Shift+Space elsewhere.
func DefaultConfig() Config {
	if runtime.GOOS == "darwin" {
		return Config{Cmd: true, Shift: true, Key: "Space"}
	}
	return Config{Ctrl: true, Shift: true, Key: "Space"}
}

// String formats the combination for display, e.g. "Ctrl+Shift+Space"
func (c Config) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Cmd {
		parts = append(parts, "Cmd")
	}
	key := c.Key
	if key == "" {
		key = "Space"
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

// keyFromString converts a key name to a key code, defaulting to Space
func keyFromString(keyStr string) hotkey.Key {
	keyMap := map[string]hotkey.Key{
		"Space": hotkey.KeySpace, "Escape": hotkey.KeyEscape,
		"Return": hotkey.KeyReturn, "Tab": hotkey.KeyTab,
		"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
		"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
		"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
		"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
		"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
		"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
		"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
		"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
		"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
		"8": hotkey.Key8, "9": hotkey.Key9,
	}

	if key, ok := keyMap[keyStr]; ok {
		return key
	}
	return hotkey.KeySpace
}

// Manager binds the global hotkey and serializes presses into Toggle events
type Manager struct {
	hk        *hotkey.Hotkey
	config    Config
	eventChan chan Event
	stopChan  chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
	running   bool
}

// New creates a hotkey manager with the platform default shortcut
func New() *Manager {
	return &Manager{
		config:    DefaultConfig(),
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
	}
}

// Register binds the hotkey with the system and starts listening
func (m *Manager) Register(config Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("hotkey is already running, call Close() first")
	}

	m.config = config

	// Recreate channels (they may have been closed by a previous Close())
	m.stopChan = make(chan struct{})
	m.eventChan = make(chan Event, 10)

	hk := hotkey.New(config.modifiers(), keyFromString(config.Key))
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %s: %w", config, err)
	}

	m.hk = hk
	m.running = true

	m.wg.Add(1)
	go m.listen()

	return nil
}

// listen forwards keydown events as Toggle events until stopped
func (m *Manager) listen() {
	defer m.wg.Done()

	for {
		select {
		case <-m.hk.Keydown():
			m.eventChan <- Event{}
		case <-m.stopChan:
			return
		}
	}
}

// Events returns the channel of Toggle events
func (m *Manager) Events() <-chan Event {
	return m.eventChan
}

// Close unregisters the hotkey and stops listening
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	var unregisterErr error

	close(m.stopChan)
	m.wg.Wait()

	if m.hk != nil {
		if err := m.hk.Unregister(); err != nil {
			unregisterErr = fmt.Errorf("failed to unregister hotkey: %w", err)
		}
	}

	// Close the event channel so consumers observe shutdown
	if m.eventChan != nil {
		close(m.eventChan)
		m.eventChan = nil
	}

	// Mark not-running even if Unregister failed, so Register stays usable
	m.running = false

	return unregisterErr
}

// IsRunning returns whether the hotkey is currently registered
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// GetConfig returns the current hotkey configuration
func (m *Manager) GetConfig() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}
