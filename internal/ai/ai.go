// Package ai turns natural language into task commands and chat replies.
//
// Gemini is the real implementation; Fixed returns keyword matched canned
// answers and stands in when no API key is configured.
package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Intents recognised in commands.
const (
	IntentCreateTask   = "create_task"
	IntentUpdateTask   = "update_task"
	IntentCompleteTask = "complete_task"
	IntentDeleteTask   = "delete_task"
	IntentQueryTasks   = "query_tasks"
	IntentUnknown      = "unknown"
)

// Command is a parsed natural language instruction.
type Command struct {
	Intent     string         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Confidence float64        `json:"confidence"`
}

// Entity returns entities[key] as a string, or "".
func (c *Command) Entity(key string) string {
	if c == nil || c.Entities == nil {
		return ""
	}
	switch v := c.Entities[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ChatMessage is one turn of conversation history.
type ChatMessage struct {
	Role    string `json:"role" binding:"omitempty,oneof=user assistant"`
	Content string `json:"content"`
}

// Action is a follow-up the client can offer as a button.
type Action struct {
	Type        string         `json:"type"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	DisplayText string         `json:"displayText"`
}

// ChatReply is the assistant's answer to a chat message.
type ChatReply struct {
	Text             string   `json:"text"`
	SuggestedActions []Action `json:"suggestedActions"`
}

// IntentParser extracts a Command from free text.
type IntentParser interface {
	ParseIntent(ctx context.Context, text string) (*Command, error)
}

// Chatter answers a chat message given the prior conversation.
type Chatter interface {
	Chat(ctx context.Context, message string, history []ChatMessage) (*ChatReply, error)
}

// Assistant combines both capabilities.
type Assistant interface {
	IntentParser
	Chatter
}

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n?```")
	bareJSON   = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractJSON finds a JSON object in model output: a fenced block first,
// then the outermost braces.
func extractJSON(s string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := bareJSON.FindString(s); m != "" {
		return m, true
	}
	return "", false
}
