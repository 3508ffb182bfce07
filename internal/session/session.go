// Package session owns the recording session state machine: it serializes
// hotkey toggles, drives capture, transcription, paste and notification,
// and guarantees at most one session is ever active.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/PieterBecking/whisper-app/internal/audio"
	"github.com/PieterBecking/whisper-app/internal/hotkey"
	"github.com/PieterBecking/whisper-app/internal/paste"
	"github.com/PieterBecking/whisper-app/internal/transcribe"
	"github.com/PieterBecking/whisper-app/internal/wav"
)

// State represents the current session state
type State int

const (
	// Idle means no session is active
	Idle State = iota
	// Recording means the microphone is capturing
	Recording
	// Processing means a transcription request is in flight
	Processing
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Recording:
		return "Recording"
	case Processing:
		return "Processing"
	default:
		return "Unknown"
	}
}

// Paster delivers transcribed text to the OS input stream
type Paster interface {
	Paste(text string) error
}

// Notifier emits user-visible status messages
type Notifier interface {
	InfoMsg(message string)
	SuccessMsg(message string)
	ErrorMsg(message string)
}

// Logger is the subset of the app logger the session uses
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config holds session configuration
type Config struct {
	SampleRate  int
	Channels    int
	MaxDuration time.Duration // auto-stop; 0 disables
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		SampleRate:  16000,
		Channels:    1,
		MaxDuration: 60 * time.Second,
	}
}

// outcome is the completion of one transcription request
type outcome struct {
	text string
	err  error
}

// Manager is the single owner of session state. All mutation happens on
// the Run goroutine; toggles, auto-stop firings and transcription
// completions are serialized through one select loop, so a Toggle arriving
// during Processing is observed and discarded rather than queued.
type Manager struct {
	config      Config
	driver      audio.Driver
	transcriber transcribe.Transcriber
	paster      Paster
	notifier    Notifier
	log         Logger

	events   <-chan hotkey.Event
	results  chan outcome
	autoStop chan uint64
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu        sync.Mutex
	state     State
	capture   audio.Capture
	startedAt time.Time
	stopTimer *time.Timer
	seq       uint64 // recording generation, guards stale auto-stops
	onState   func(State)
}

// New creates a session manager. Run must be started for it to do anything.
func New(driver audio.Driver, transcriber transcribe.Transcriber, paster Paster, notifier Notifier, log Logger, events <-chan hotkey.Event, config Config) *Manager {
	return &Manager{
		config:      config,
		driver:      driver,
		transcriber: transcriber,
		paster:      paster,
		notifier:    notifier,
		log:         log,
		events:      events,
		results:     make(chan outcome, 1),
		autoStop:    make(chan uint64, 1),
		stopChan:    make(chan struct{}),
	}
}

// SetStateHook registers a callback invoked on every state change, from
// the Run goroutine. Used to drive the tray icon.
func (m *Manager) SetStateHook(hook func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onState = hook
}

// GetState returns the current session state
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// setState updates the state and fires the state hook
func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	hook := m.onState
	m.mu.Unlock()

	if hook != nil {
		hook(state)
	}
}

// Run consumes events until the event channel closes or Stop is called.
// It is the only goroutine that mutates session state.
func (m *Manager) Run() {
	for {
		select {
		case _, ok := <-m.events:
			if !ok {
				return
			}
			m.handleToggle()
		case seq := <-m.autoStop:
			m.handleAutoStop(seq)
		case res := <-m.results:
			m.handleOutcome(res)
		case <-m.stopChan:
			return
		}
	}
}

// handleToggle dispatches a hotkey press according to the current state
func (m *Manager) handleToggle() {
	switch m.GetState() {
	case Idle:
		m.beginRecording()
	case Recording:
		m.finishRecording()
	case Processing:
		// Observed and discarded: no new capture may start and the
		// in-flight transcription is not cancellable.
		m.log.Info("toggle ignored while processing")
	}
}

// beginRecording attempts Idle -> Recording. On device failure the state
// machine stays in Idle, ready for the next toggle.
func (m *Manager) beginRecording() {
	capture, err := m.driver.Begin()
	if err != nil {
		m.log.Error("failed to start recording: %v", err)
		m.notifier.ErrorMsg("❌ Failed to start recording: microphone unavailable")
		return
	}

	m.mu.Lock()
	m.capture = capture
	m.startedAt = time.Now()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	if m.config.MaxDuration > 0 {
		m.mu.Lock()
		m.stopTimer = time.AfterFunc(m.config.MaxDuration, func() {
			select {
			case m.autoStop <- seq:
			default:
			}
		})
		m.mu.Unlock()
	}

	m.setState(Recording)
	m.log.Info("recording started")
	m.notifier.InfoMsg("🔴 Recording started...")
}

// handleAutoStop stops a recording that hit the maximum duration. A stale
// firing from an earlier recording is ignored.
func (m *Manager) handleAutoStop(seq uint64) {
	m.mu.Lock()
	current := m.seq
	state := m.state
	m.mu.Unlock()

	if state != Recording || seq != current {
		return
	}

	m.log.Warn("recording hit maximum duration (%s), auto-stopping", m.config.MaxDuration)
	m.finishRecording()
}

// finishRecording drives Recording -> Processing and hands the buffer to
// the transcription goroutine. The event loop keeps running so toggles
// during Processing are still observed.
func (m *Manager) finishRecording() {
	m.mu.Lock()
	if m.stopTimer != nil {
		m.stopTimer.Stop()
		m.stopTimer = nil
	}
	capture := m.capture
	m.capture = nil
	duration := time.Since(m.startedAt)
	m.mu.Unlock()

	if capture == nil {
		// Cannot happen while the transition table is respected
		m.log.Error("internal invariant violation: no capture handle in state Recording")
		m.setState(Idle)
		return
	}

	pcm, err := capture.End()
	if err != nil {
		m.log.Error("failed to stop recording: %v", err)
		m.notifier.ErrorMsg("❌ Failed to stop recording")
		m.setState(Idle)
		return
	}

	m.log.Info("recording stopped after %s (%d bytes)", duration.Round(time.Millisecond), len(pcm))

	if len(pcm) == 0 {
		m.log.Warn("recording produced no audio data")
		m.notifier.InfoMsg("⏹️ Nothing recorded")
		m.setState(Idle)
		return
	}

	m.setState(Processing)
	m.notifier.InfoMsg("⏹️ Processing transcription...")

	m.wg.Add(1)
	go func(pcm []byte) {
		defer m.wg.Done()

		wavData := wav.Encode(pcm, m.config.SampleRate, m.config.Channels)
		text, err := m.transcriber.Transcribe(context.Background(), wavData)

		select {
		case m.results <- outcome{text: text, err: err}:
		case <-m.stopChan:
		}
	}(pcm)
	// The PCM buffer is referenced only by that goroutine now; it becomes
	// reclaimable as soon as the request completes, success or not.
}

// handleOutcome completes a cycle: paste on success, notify on failure,
// and return to Idle either way.
func (m *Manager) handleOutcome(res outcome) {
	if m.GetState() != Processing {
		m.log.Error("internal invariant violation: transcription result in state %s", m.GetState())
		m.setState(Idle)
		return
	}
	defer m.setState(Idle)

	if res.err != nil {
		m.log.Error("transcription failed: %v", res.err)
		m.notifier.ErrorMsg("❌ " + describeFailure(res.err))
		return
	}

	if res.text == "" {
		m.log.Warn("transcription returned empty text")
		m.notifier.InfoMsg("⏹️ No speech detected")
		return
	}

	m.log.Info("transcribed %d characters", len(res.text))

	if err := m.paster.Paste(res.text); err != nil {
		m.log.Error("paste failed: %v", err)
		if errors.Is(err, paste.ErrNoPasteTool) {
			m.notifier.ErrorMsg("❌ No paste tool available. Transcript copied to clipboard.")
		} else {
			m.notifier.ErrorMsg("❌ Paste failed")
		}
		return
	}

	m.notifier.SuccessMsg("✅ Pasted: " + preview(res.text))
}

// Stop shuts the manager down, discarding any in-flight recording
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})

	m.mu.Lock()
	if m.stopTimer != nil {
		m.stopTimer.Stop()
		m.stopTimer = nil
	}
	capture := m.capture
	m.capture = nil
	m.state = Idle
	m.mu.Unlock()

	if capture != nil {
		if _, err := capture.End(); err != nil {
			m.log.Warn("failed to stop capture during shutdown: %v", err)
		}
	}

	m.wg.Wait()
}

// describeFailure maps a transcription failure kind to a user message
func describeFailure(err error) string {
	switch {
	case errors.Is(err, transcribe.ErrUnauthorized):
		return "Transcription failed: API key rejected"
	case errors.Is(err, transcribe.ErrRateLimited):
		return "Transcription failed: rate limited, try again shortly"
	case errors.Is(err, transcribe.ErrNetwork):
		return "Transcription failed: network error"
	default:
		return "Transcription failed: service error"
	}
}

// preview shortens text for a notification
func preview(text string) string {
	const max = 50
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
