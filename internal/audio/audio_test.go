package audio

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.SampleRate != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", config.SampleRate)
	}
	if config.Channels != 1 {
		t.Errorf("Expected 1 channel, got %d", config.Channels)
	}
	if config.DeviceID != -1 {
		t.Errorf("Expected default device ID -1, got %d", config.DeviceID)
	}
	if config.Latency != HighStability {
		t.Errorf("Expected HighStability latency, got %v", config.Latency)
	}
}

func TestBeginEnd(t *testing.T) {
	driver, err := NewPortAudioDriver(DefaultConfig())
	if err != nil {
		t.Skipf("PortAudio not available: %v", err)
	}
	defer driver.Close()

	capture, err := driver.Begin()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			t.Skipf("No audio input device: %v", err)
		}
		t.Fatalf("Begin failed: %v", err)
	}

	data, err := capture.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if data == nil {
		t.Error("End returned nil data")
	}
	t.Logf("Recorded %d bytes", len(data))
}

func TestDoubleEnd(t *testing.T) {
	driver, err := NewPortAudioDriver(DefaultConfig())
	if err != nil {
		t.Skipf("PortAudio not available: %v", err)
	}
	defer driver.Close()

	capture, err := driver.Begin()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			t.Skipf("No audio input device: %v", err)
		}
		t.Fatalf("Begin failed: %v", err)
	}

	if _, err := capture.End(); err != nil {
		t.Fatalf("First End failed: %v", err)
	}

	// The handle is single-use; a second End is an invariant violation
	if _, err := capture.End(); !errors.Is(err, ErrCaptureFinished) {
		t.Errorf("Expected ErrCaptureFinished on second End, got %v", err)
	}
}

func TestConcurrentBeginRejected(t *testing.T) {
	driver, err := NewPortAudioDriver(DefaultConfig())
	if err != nil {
		t.Skipf("PortAudio not available: %v", err)
	}
	defer driver.Close()

	capture, err := driver.Begin()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			t.Skipf("No audio input device: %v", err)
		}
		t.Fatalf("Begin failed: %v", err)
	}
	defer capture.End()

	if _, err := driver.Begin(); !errors.Is(err, ErrCaptureBusy) {
		t.Errorf("Expected ErrCaptureBusy on second Begin, got %v", err)
	}
}

func TestBeginAfterEnd(t *testing.T) {
	driver, err := NewPortAudioDriver(DefaultConfig())
	if err != nil {
		t.Skipf("PortAudio not available: %v", err)
	}
	defer driver.Close()

	capture, err := driver.Begin()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			t.Skipf("No audio input device: %v", err)
		}
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := capture.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	// The device must be available again once the capture is finished
	second, err := driver.Begin()
	if err != nil {
		t.Fatalf("Begin after End failed: %v", err)
	}
	if _, err := second.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
}

func TestListDevices(t *testing.T) {
	driver, err := NewPortAudioDriver(DefaultConfig())
	if err != nil {
		t.Skipf("PortAudio not available: %v", err)
	}
	defer driver.Close()

	devices, err := driver.ListDevices()
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(devices) == 0 {
		t.Skip("No audio input devices available")
	}

	for _, dev := range devices {
		t.Logf("Device %d: %s (default: %v)", dev.ID, dev.Name, dev.IsDefault)
	}
}
