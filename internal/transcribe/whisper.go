package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// Config holds Whisper API client configuration
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// DefaultConfig returns the default Whisper client configuration
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		Model:    "whisper-1",
		Endpoint: defaultEndpoint,
		Timeout:  60 * time.Second,
	}
}

// WhisperClient implements Transcriber against the OpenAI audio
// transcription endpoint. No retries: a failure is classified and returned,
// and the user re-triggers the hotkey to try again.
type WhisperClient struct {
	config     Config
	httpClient *http.Client
}

// NewWhisperClient creates a new Whisper API client
func NewWhisperClient(config Config) *WhisperClient {
	if config.Model == "" {
		config.Model = "whisper-1"
	}
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &WhisperClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type whisperResponse struct {
	Text string `json:"text"`
}

type whisperError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the WAV payload and returns the recognized text,
// trimmed of surrounding whitespace.
func (c *WhisperClient) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "recording.wav")
	if err != nil {
		return "", fmt.Errorf("%w: create form file: %v", ErrService, err)
	}
	if _, err := part.Write(wavData); err != nil {
		return "", fmt.Errorf("%w: write form file: %v", ErrService, err)
	}
	_ = writer.WriteField("model", c.config.Model)
	_ = writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, body)
	if err != nil {
		return "", fmt.Errorf("%w: new request: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBody)
	}

	var parsed whisperResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrService, err)
	}

	return strings.TrimSpace(parsed.Text), nil
}

// classifyStatus maps an HTTP failure status to a failure kind
func classifyStatus(status int, body []byte) error {
	detail := serviceMessage(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: http %d: %s", ErrUnauthorized, status, detail)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", ErrRateLimited, status, detail)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrService, status, detail)
	}
}

// serviceMessage extracts the error message from an API error body,
// falling back to a truncated raw body.
func serviceMessage(body []byte) string {
	var parsed whisperError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}

	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "<empty body>"
	}
	return s
}
