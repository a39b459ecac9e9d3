package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ncobase/voxtask/config"
)

// HTTPSpeaker posts text to a JSON text-to-speech endpoint.
type HTTPSpeaker struct {
	http *http.Client
	url  string
}

// NewHTTPSpeaker creates a speaker for the configured TTS endpoint.
func NewHTTPSpeaker(cfg *config.TTS, timeout time.Duration) (*HTTPSpeaker, error) {
	if cfg == nil || cfg.APIKey == "" || cfg.URL == "" {
		return nil, errors.New("text to speech api key and url are required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSpeaker{http: bearerClient(cfg.APIKey, timeout), url: cfg.URL}, nil
}

// Synthesize requests mp3 audio for text.
func (s *HTTPSpeaker) Synthesize(ctx context.Context, text, voice string) (*Speech, error) {
	if voice == "" {
		voice = "default"
	}
	payload, err := json.Marshal(map[string]string{"text": text, "voice": voice, "format": "mp3"})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to synthesize speech: %w", apiError("tts", res))
	}

	var sp Speech
	if err := json.NewDecoder(res.Body).Decode(&sp); err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: decode: %w", err)
	}
	if sp.Format == "" {
		sp.Format = "mp3"
	}
	return &sp, nil
}
