// Package voice converts speech to text and text to speech.
package voice

import (
	"context"
	"errors"
)

// ErrEmptyAudio is returned when there is nothing to transcribe.
var ErrEmptyAudio = errors.New("audio data is required")

// Audio is an uploaded recording.
type Audio struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Transcript is the recognised text of a recording.
type Transcript struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Speech points at synthesized audio.
type Speech struct {
	AudioURL string `json:"audioUrl"`
	Format   string `json:"format"`
}

// Transcriber turns audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio *Audio) (*Transcript, error)
}

// Speaker turns text into audio.
type Speaker interface {
	Synthesize(ctx context.Context, text, voice string) (*Speech, error)
}

// Fixed returns the same transcript and audio URL for every call.
type Fixed struct {
	Transcript Transcript
	Speech     Speech
}

// NewFixed returns a double with the stock responses.
func NewFixed() *Fixed {
	return &Fixed{
		Transcript: Transcript{Text: "Add a meeting with the design team tomorrow at 3pm", Confidence: 0.95},
		Speech:     Speech{AudioURL: "https://example.com/audio/response.mp3", Format: "mp3"},
	}
}

// Transcribe implements Transcriber.
func (f *Fixed) Transcribe(_ context.Context, audio *Audio) (*Transcript, error) {
	if audio == nil || len(audio.Data) == 0 {
		return nil, ErrEmptyAudio
	}
	t := f.Transcript
	return &t, nil
}

// Synthesize implements Speaker.
func (f *Fixed) Synthesize(_ context.Context, _, _ string) (*Speech, error) {
	s := f.Speech
	return &s, nil
}
