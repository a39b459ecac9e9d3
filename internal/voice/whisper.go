package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/validation/validator"
	"golang.org/x/oauth2"
)

// APIError is a non-2xx response from a voice endpoint.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Body)
}

func bearerClient(token string, timeout time.Duration) *http.Client {
	hc := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = timeout
	return hc
}

func apiError(service string, res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	return &APIError{Service: service, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
}

// Whisper transcribes through the OpenAI audio transcription API.
type Whisper struct {
	http     *http.Client
	endpoint string
	model    string
}

// NewWhisper creates a Whisper client.
func NewWhisper(cfg *config.Whisper, timeout time.Duration) (*Whisper, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("whisper api key is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	return &Whisper{
		http:     bearerClient(cfg.APIKey, timeout),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/v1/audio/transcriptions",
		model:    model,
	}, nil
}

// Transcribe uploads the recording as multipart form data.
func (w *Whisper) Transcribe(ctx context.Context, audio *Audio) (*Transcript, error) {
	if audio == nil || len(audio.Data) == 0 {
		return nil, ErrEmptyAudio
	}
	filename := audio.Filename
	if filename == "" {
		filename = "audio" + validator.AudioExtension(audio.ContentType)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio.Data); err != nil {
		return nil, err
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to transcribe audio: %w", apiError("whisper", res))
	}

	var out struct {
		Text       string   `json:"text"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: decode: %w", err)
	}
	t := &Transcript{Text: strings.TrimSpace(out.Text), Confidence: 0.9}
	if out.Confidence != nil {
		t.Confidence = *out.Confidence
	}
	return t, nil
}
