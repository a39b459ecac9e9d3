package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the configuration implementation.
type Config struct {
	AppName    string
	RunMode    string
	Server     *Server
	Logger     *Logger
	Data       *Data
	AI         *AI
	Voice      *Voice
	Automation *Automation
	Worker     *Worker
	Observes   *Observes
	Viper      *viper.Viper
}

// Server holds the HTTP listener settings.
type Server struct {
	Host string
	Port int
}

// Addr returns host:port for the listener.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// envBindings maps config keys to the environment variables that may set them.
// When several names are listed the first one that is set wins.
var envBindings = map[string][]string{
	"server.port":                       {"PORT", "SERVER_PORT"},
	"data.provider":                     {"DATABASE_PROVIDER", "DATABASE_TYPE"},
	"data.airtable.api_key":             {"AIRTABLE_API_KEY"},
	"data.airtable.base_id":             {"AIRTABLE_BASE_ID"},
	"data.airtable.base_url":            {"AIRTABLE_BASE_URL"},
	"data.notion.api_key":               {"NOTION_API_KEY"},
	"data.notion.tasks_database_id":     {"NOTION_TASKS_DATABASE_ID"},
	"data.notion.projects_database_id":  {"NOTION_PROJECTS_DATABASE_ID"},
	"data.notion.activity_database_id":  {"NOTION_USER_ACTIVITY_DATABASE_ID"},
	"data.notion.summaries_database_id": {"NOTION_DAILY_SUMMARIES_DATABASE_ID"},
	"ai.gemini.api_key":                 {"GEMINI_API_KEY"},
	"voice.whisper.api_key":             {"WHISPER_API_KEY"},
	"voice.tts.api_key":                 {"TEXT_TO_SPEECH_API_KEY"},
	"voice.tts.url":                     {"TEXT_TO_SPEECH_URL"},
	"voice.feedback_enabled":            {"VOICE_FEEDBACK_ENABLED"},
	"automation.n8n.api_key":            {"N8N_API_KEY"},
	"automation.n8n.base_url":           {"N8N_BASE_URL"},
	"observes.sentry.endpoint":          {"SENTRY_DSN"},
	"observes.sentry.environment":       {"SENTRY_ENVIRONMENT"},
	"run_mode":                          {"RUN_MODE", "GIN_MODE"},
}

// LoadConfig loads the configuration from the given file, or from the
// default search paths when configPath is empty.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.voxtask")
		v.AddConfigPath("/etc/voxtask")
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	data, err := getDataConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Server: &Server{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Logger:     getLoggerConfig(v),
		Data:       data,
		AI:         getAIConfig(v),
		Voice:      getVoiceConfig(v),
		Automation: getAutomationConfig(v),
		Worker:     getWorkerConfig(v),
		Observes:   getObservesConfig(v),
		Viper:      v,
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "voxtask")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("data.provider", ProviderAirtable)
}
