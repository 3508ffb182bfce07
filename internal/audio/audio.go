package audio

import "errors"

var (
	// ErrDeviceUnavailable means no input device exists, the device could
	// not be opened, or the OS denied microphone access.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")

	// ErrCaptureBusy means a capture is already in progress. The session
	// state machine guarantees this never happens; seeing it is a bug.
	ErrCaptureBusy = errors.New("capture already in progress")

	// ErrCaptureFinished means End was called twice on the same capture.
	// Like ErrCaptureBusy this indicates a broken invariant, not a user
	// condition.
	ErrCaptureFinished = errors.New("capture already finished")
)

// Device represents an audio input device
type Device struct {
	ID        int
	Name      string
	IsDefault bool
}

// LatencyMode defines the latency priority
type LatencyMode int

const (
	// LowLatency prioritizes low latency (real-time)
	LowLatency LatencyMode = iota
	// HighStability prioritizes stability (larger buffer)
	HighStability
)

// Config holds audio configuration
type Config struct {
	DeviceID   int
	SampleRate int
	Channels   int
	Latency    LatencyMode
}

// DefaultConfig returns the default audio configuration:
// 16kHz mono, system default device, stability-priority latency.
func DefaultConfig() Config {
	return Config{
		DeviceID:   -1, // -1 means use default device
		SampleRate: 16000,
		Channels:   1,
		Latency:    HighStability,
	}
}

// Capture is a single recording in progress. It is single-use: End stops
// the stream, returns the accumulated 16-bit LE PCM data and invalidates
// the handle. A second End returns ErrCaptureFinished.
type Capture interface {
	End() ([]byte, error)
}

// Driver is the interface for audio input. The microphone is held
// exclusively between Begin and End; only one capture may exist at a time.
type Driver interface {
	// ListDevices returns a list of available audio input devices
	ListDevices() ([]Device, error)

	// Begin opens the input device and starts recording. A failure to open
	// the device is reported synchronously as ErrDeviceUnavailable so the
	// caller never believes recording has started when it has not.
	Begin() (Capture, error)

	// Close releases all resources
	Close() error
}
