package wav

import (
	"encoding/binary"
	"testing"
)

func TestEncodeHeader(t *testing.T) {
	pcm := make([]byte, 32000) // 1 second at 16kHz mono
	data := Encode(pcm, 16000, 1)

	if len(data) != 44+len(pcm) {
		t.Fatalf("Expected %d bytes, got %d", 44+len(pcm), len(data))
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("Expected RIFF magic, got %q", data[0:4])
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("Expected WAVE magic, got %q", data[8:12])
	}
	if string(data[12:16]) != "fmt " {
		t.Errorf("Expected fmt chunk, got %q", data[12:16])
	}
	if string(data[36:40]) != "data" {
		t.Errorf("Expected data chunk, got %q", data[36:40])
	}

	if riffSize := binary.LittleEndian.Uint32(data[4:8]); riffSize != uint32(36+len(pcm)) {
		t.Errorf("Expected RIFF size %d, got %d", 36+len(pcm), riffSize)
	}
	if format := binary.LittleEndian.Uint16(data[20:22]); format != 1 {
		t.Errorf("Expected PCM format 1, got %d", format)
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("Expected 1 channel, got %d", channels)
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", rate)
	}
	if byteRate := binary.LittleEndian.Uint32(data[28:32]); byteRate != 32000 {
		t.Errorf("Expected byte rate 32000, got %d", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(data[32:34]); blockAlign != 2 {
		t.Errorf("Expected block align 2, got %d", blockAlign)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Errorf("Expected 16 bits per sample, got %d", bits)
	}
	if dataSize := binary.LittleEndian.Uint32(data[40:44]); dataSize != uint32(len(pcm)) {
		t.Errorf("Expected data size %d, got %d", len(pcm), dataSize)
	}
}

func TestEncodeEmpty(t *testing.T) {
	data := Encode(nil, 16000, 1)

	if len(data) != 44 {
		t.Errorf("Expected header-only 44 bytes, got %d", len(data))
	}
	if dataSize := binary.LittleEndian.Uint32(data[40:44]); dataSize != 0 {
		t.Errorf("Expected data size 0, got %d", dataSize)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name       string
		bytes      int
		sampleRate int
		channels   int
		expected   float64
	}{
		{"one second mono", 32000, 16000, 1, 1.0},
		{"half second mono", 16000, 16000, 1, 0.5},
		{"one second stereo", 64000, 16000, 2, 1.0},
		{"zero rate", 32000, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Duration(make([]byte, tt.bytes), tt.sampleRate, tt.channels)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
