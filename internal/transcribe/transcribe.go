// Package transcribe sends recorded audio to a cloud speech-to-text service.
package transcribe

import (
	"context"
	"errors"
)

// Failure kinds for the transcription boundary. Callers classify with
// errors.Is; the wrapped error carries the underlying detail.
var (
	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("transcription request unauthorized")

	// ErrRateLimited indicates the service asked us to slow down
	ErrRateLimited = errors.New("transcription rate limited")

	// ErrNetwork indicates the request never produced a service response
	ErrNetwork = errors.New("transcription network error")

	// ErrService indicates the service responded but could not transcribe
	ErrService = errors.New("transcription service error")
)

// Transcriber converts a WAV payload into text. Implementations are
// stateless; each call is an independent request.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}
