package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*WhisperClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	config := DefaultConfig("test-key")
	config.Endpoint = server.URL
	return NewWhisperClient(config), server
}

func TestTranscribeSuccess(t *testing.T) {
	var gotAuth, gotContentType string
	var gotModel string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm failed: %v", err)
		}
		gotModel = r.FormValue("model")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile failed: %v", err)
		} else {
			file.Close()
			if header.Filename != "recording.wav" {
				t.Errorf("Expected filename recording.wav, got %q", header.Filename)
			}
		}

		w.Write([]byte(`{"text": "  hello world \n"}`))
	})
	defer server.Close()

	text, err := client.Transcribe(context.Background(), []byte("RIFF..."))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("Expected model whisper-1, got %q", gotModel)
	}
	if gotContentType == "" {
		t.Error("Expected multipart content type header")
	}
}

func TestTranscribeFailureClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, ErrRateLimited},
		{"server error", http.StatusInternalServerError, `oops`, ErrService},
		{"bad gateway", http.StatusBadGateway, ``, ErrService},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"no audio"}}`, ErrService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			_, err := client.Transcribe(context.Background(), []byte("data"))
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestTranscribeNetworkError(t *testing.T) {
	config := DefaultConfig("test-key")
	config.Endpoint = "http://127.0.0.1:1" // nothing listens here
	config.Timeout = 2 * time.Second
	client := NewWhisperClient(config)

	_, err := client.Transcribe(context.Background(), []byte("data"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestTranscribeMalformedResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	_, err := client.Transcribe(context.Background(), []byte("data"))
	if !errors.Is(err, ErrService) {
		t.Errorf("Expected ErrService, got %v", err)
	}
}

func TestTranscribeContextCancelled(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(`{"text":"late"}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Transcribe(ctx, []byte("data"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork for cancelled context, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("key")

	if config.Model != "whisper-1" {
		t.Errorf("Expected model whisper-1, got %q", config.Model)
	}
	if config.Endpoint != defaultEndpoint {
		t.Errorf("Expected default endpoint, got %q", config.Endpoint)
	}
	if config.Timeout != 60*time.Second {
		t.Errorf("Expected 60s timeout, got %v", config.Timeout)
	}
}

func TestNewWhisperClientFillsZeroValues(t *testing.T) {
	client := NewWhisperClient(Config{APIKey: "key"})

	if client.config.Model != "whisper-1" {
		t.Errorf("Expected model default, got %q", client.config.Model)
	}
	if client.config.Endpoint != defaultEndpoint {
		t.Errorf("Expected endpoint default, got %q", client.config.Endpoint)
	}
	if client.config.Timeout <= 0 {
		t.Errorf("Expected positive timeout, got %v", client.config.Timeout)
	}
}
