// Package config loads voxtask configuration with Viper from an optional
// YAML file and the process environment.
//
// Lookup order for the file is the --config flag, then config.yaml in the
// working directory, $HOME/.voxtask and /etc/voxtask. A missing file is
// not an error: defaults and environment variables still apply.
//
// Environment variables take precedence over the file. Besides the
// automatic mapping (SERVER_PORT for server.port), the well known
// service variables are bound explicitly:
//
//	AIRTABLE_API_KEY, AIRTABLE_BASE_ID
//	NOTION_API_KEY, NOTION_TASKS_DATABASE_ID, ...
//	GEMINI_API_KEY, WHISPER_API_KEY
//	TEXT_TO_SPEECH_API_KEY, TEXT_TO_SPEECH_URL
//	N8N_API_KEY, N8N_BASE_URL
//	DATABASE_PROVIDER, DATABASE_TYPE
//	PORT, VOICE_FEEDBACK_ENABLED, SENTRY_DSN
//
// Values are read once and fixed for the process lifetime. Sub-configs
// are exposed to google/wire through ProviderSet.
package config
