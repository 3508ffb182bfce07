package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDriver implements Driver using PortAudio
type PortAudioDriver struct {
	config Config
	mu     sync.Mutex
	active *portAudioCapture
}

// NewPortAudioDriver initializes PortAudio and returns a driver for the
// configured device. Initialization failure means there is no usable audio
// subsystem at all; callers treat that as fatal.
func NewPortAudioDriver(config Config) (*PortAudioDriver, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &PortAudioDriver{config: config}, nil
}

// ListDevices returns a list of available audio input devices
func (d *PortAudioDriver) ListDevices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	defaultInput, err := portaudio.DefaultInputDevice()
	if err != nil {
		// No default device; continue without marking one
		defaultInput = nil
	}

	var result []Device
	for i, dev := range devices {
		if dev.MaxInputChannels > 0 {
			result = append(result, Device{
				ID:        i,
				Name:      dev.Name,
				IsDefault: defaultInput != nil && dev.Name == defaultInput.Name,
			})
		}
	}
	return result, nil
}

// inputDevice resolves the configured device ID to a PortAudio device
func (d *PortAudioDriver) inputDevice() (*portaudio.DeviceInfo, error) {
	if d.config.DeviceID == -1 {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("%w: no default input device: %v", ErrDeviceUnavailable, err)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list devices: %v", ErrDeviceUnavailable, err)
	}
	if d.config.DeviceID < 0 || d.config.DeviceID >= len(devices) {
		return nil, fmt.Errorf("%w: invalid device ID %d", ErrDeviceUnavailable, d.config.DeviceID)
	}

	dev := devices[d.config.DeviceID]
	if dev.MaxInputChannels <= 0 {
		return nil, fmt.Errorf("%w: device %q (ID %d) has no input channels",
			ErrDeviceUnavailable, dev.Name, d.config.DeviceID)
	}
	return dev, nil
}

// Begin opens the input stream and starts recording. All failure paths
// report synchronously; on success the driver holds the device exclusively
// until End is called on the returned capture.
func (d *PortAudioDriver) Begin() (Capture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		return nil, ErrCaptureBusy
	}

	device, err := d.inputDevice()
	if err != nil {
		return nil, err
	}

	var latency time.Duration
	switch d.config.Latency {
	case LowLatency:
		latency = device.DefaultLowInputLatency
	default:
		latency = device.DefaultHighInputLatency
	}

	c := &portAudioCapture{
		driver: d,
		buffer: make([]int16, 0, 1024*1024),
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: d.config.Channels,
			Latency:  latency,
		},
		SampleRate:      float64(d.config.SampleRate),
		FramesPerBuffer: 1024,
	}, c.callback)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stream: %v", ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("%w: failed to start stream: %v", ErrDeviceUnavailable, err)
	}

	c.stream = stream
	d.active = c
	return c, nil
}

// release clears the active capture, making the device available again
func (d *PortAudioDriver) release(c *portAudioCapture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == c {
		d.active = nil
	}
}

// Close stops any in-flight capture and terminates PortAudio
func (d *PortAudioDriver) Close() error {
	d.mu.Lock()
	active := d.active
	d.active = nil
	d.mu.Unlock()

	if active != nil {
		if _, err := active.End(); err != nil && err != ErrCaptureFinished {
			return fmt.Errorf("failed to stop active capture: %w", err)
		}
	}

	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// portAudioCapture is a single in-flight recording on a PortAudio stream
type portAudioCapture struct {
	driver   *PortAudioDriver
	stream   *portaudio.Stream
	mu       sync.Mutex
	buffer   []int16
	finished bool
}

// callback is invoked by PortAudio when input samples are available
func (c *portAudioCapture) callback(in []int16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finished {
		c.buffer = append(c.buffer, in...)
	}
}

// End stops the stream, releases the device and returns the recorded PCM
// data as 16-bit little-endian bytes. The handle is invalid afterwards.
func (c *portAudioCapture) End() ([]byte, error) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return nil, ErrCaptureFinished
	}
	c.finished = true
	buffer := c.buffer
	c.buffer = nil
	c.mu.Unlock()

	var stopErr error
	if err := c.stream.Stop(); err != nil {
		stopErr = fmt.Errorf("failed to stop stream: %w", err)
	}
	if err := c.stream.Close(); err != nil && stopErr == nil {
		stopErr = fmt.Errorf("failed to close stream: %w", err)
	}

	c.driver.release(c)

	if stopErr != nil {
		return nil, stopErr
	}

	data := make([]byte, len(buffer)*2)
	for i, sample := range buffer {
		data[i*2] = byte(sample)
		data[i*2+1] = byte(sample >> 8)
	}
	return data, nil
}
