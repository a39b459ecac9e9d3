package config

import (
	"time"

	"github.com/spf13/viper"
)

// Capability providers
const (
	ProviderAuto   = "auto"
	ProviderFixed  = "fixed"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// AI config struct
type AI struct {
	// Provider is auto, gemini or fixed. Auto picks gemini when a key is set.
	Provider string
	Timeout  time.Duration
	Gemini   *Gemini
}

// Gemini config struct
type Gemini struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Voice config struct
type Voice struct {
	Provider        string
	FeedbackEnabled bool
	DefaultVoice    string
	Timeout         time.Duration
	Whisper         *Whisper
	TTS             *TTS
}

// Whisper config struct
type Whisper struct {
	APIKey  string
	BaseURL string
	Model   string
}

// TTS config struct
type TTS struct {
	APIKey string
	URL    string
}

// Automation config struct
type Automation struct {
	N8n *N8n
}

// N8n config struct
type N8n struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Worker config struct for the background dispatch pool
type Worker struct {
	MaxWorkers  int
	QueueSize   int
	TaskTimeout time.Duration
}

func getAIConfig(v *viper.Viper) *AI {
	return &AI{
		Provider: getStringOrDefault(v, "ai.provider", ProviderAuto),
		Timeout:  getDurationOrDefault(v, "ai.timeout", 30*time.Second),
		Gemini: &Gemini{
			APIKey:  v.GetString("ai.gemini.api_key"),
			BaseURL: getStringOrDefault(v, "ai.gemini.base_url", "https://generativelanguage.googleapis.com"),
			Model:   getStringOrDefault(v, "ai.gemini.model", "gemini-1.5-flash"),
		},
	}
}

func getVoiceConfig(v *viper.Viper) *Voice {
	return &Voice{
		Provider:        getStringOrDefault(v, "voice.provider", ProviderAuto),
		FeedbackEnabled: getBoolOrDefault(v, "voice.feedback_enabled", false),
		DefaultVoice:    getStringOrDefault(v, "voice.default_voice", "alloy"),
		Timeout:         getDurationOrDefault(v, "voice.timeout", 30*time.Second),
		Whisper: &Whisper{
			APIKey:  v.GetString("voice.whisper.api_key"),
			BaseURL: getStringOrDefault(v, "voice.whisper.base_url", "https://api.openai.com"),
			Model:   getStringOrDefault(v, "voice.whisper.model", "whisper-1"),
		},
		TTS: &TTS{
			APIKey: v.GetString("voice.tts.api_key"),
			URL:    v.GetString("voice.tts.url"),
		},
	}
}

func getAutomationConfig(v *viper.Viper) *Automation {
	return &Automation{
		N8n: &N8n{
			APIKey:  v.GetString("automation.n8n.api_key"),
			BaseURL: v.GetString("automation.n8n.base_url"),
			Timeout: getDurationOrDefault(v, "automation.n8n.timeout", 15*time.Second),
		},
	}
}

func getWorkerConfig(v *viper.Viper) *Worker {
	return &Worker{
		MaxWorkers:  getIntOrDefault(v, "worker.max_workers", 4),
		QueueSize:   getIntOrDefault(v, "worker.queue_size", 64),
		TaskTimeout: getDurationOrDefault(v, "worker.task_timeout", 30*time.Second),
	}
}
