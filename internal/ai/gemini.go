package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ncobase/voxtask/config"
)

// Gemini calls the generateContent endpoint of the Gemini API.
type Gemini struct {
	http    *http.Client
	baseURL string
	model   string
	apiKey  string
}

// NewGemini creates a Gemini client.
func NewGemini(cfg *config.Gemini, timeout time.Duration) (*Gemini, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   model,
		apiKey:  cfg.APIKey,
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// APIError is a non-2xx response from an AI endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Body)
}

const intentPrompt = `Parse the following task management command and extract the intent and entities.
Command: %q

Return only a JSON object with this structure:
{
  "intent": "create_task|update_task|complete_task|delete_task|query_tasks|unknown",
  "entities": {
    "task": "task description",
    "task_reference": "words identifying an existing task",
    "date": "YYYY-MM-DD or a relative reference such as today or tomorrow",
    "time": "HH:MM",
    "priority": "high|medium|low",
    "project": "project name",
    "timeframe": "today|tomorrow|week"
  },
  "confidence": 0.95
}`

const chatPrompt = `You are an AI assistant helping with task management and organization.
Provide helpful, concise responses and suggest relevant actions.

%s

Respond with only a JSON object with this structure:
{
  "text": "Your response text here",
  "suggestedActions": [
    {"type": "action_type", "parameters": {"param1": "value1"}, "displayText": "Button text"}
  ]
}`

// ParseIntent asks the model to classify text. Output without a JSON
// object yields the unknown intent.
func (g *Gemini) ParseIntent(ctx context.Context, text string) (*Command, error) {
	out, err := g.generate(ctx, fmt.Sprintf(intentPrompt, text), generationConfig{Temperature: 0.1, TopP: 0.8, TopK: 40})
	if err != nil {
		return nil, fmt.Errorf("failed to process command: %w", err)
	}

	raw, ok := extractJSON(out)
	if !ok {
		return unknownCommand(), nil
	}
	var cmd Command
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil || cmd.Intent == "" {
		return unknownCommand(), nil
	}
	if cmd.Entities == nil {
		cmd.Entities = map[string]any{}
	}
	return &cmd, nil
}

// Chat continues the conversation.
func (g *Gemini) Chat(ctx context.Context, message string, history []ChatMessage) (*ChatReply, error) {
	var transcript strings.Builder
	for _, m := range history {
		role := m.Role
		if role == "" {
			role = "user"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", role, m.Content)
	}
	fmt.Fprintf(&transcript, "user: %s", message)

	out, err := g.generate(ctx, fmt.Sprintf(chatPrompt, transcript.String()), generationConfig{Temperature: 0.7, TopP: 0.9, TopK: 40})
	if err != nil {
		return nil, fmt.Errorf("failed to get chatbot response: %w", err)
	}

	raw, ok := extractJSON(out)
	if !ok {
		return genericReply(), nil
	}
	var reply ChatReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil || reply.Text == "" {
		return genericReply(), nil
	}
	if reply.SuggestedActions == nil {
		reply.SuggestedActions = []Action{}
	}
	return &reply, nil
}

// generate sends a single-turn prompt and returns the first candidate's text.
func (g *Gemini) generate(ctx context.Context, prompt string, gc generationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: gc,
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var gr generateResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
