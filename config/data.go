package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store providers
const (
	ProviderAirtable = "airtable"
	ProviderNotion   = "notion"
	ProviderMemory   = "memory"
)

// Data selects and configures the task store.
type Data struct {
	Provider string
	Timeout  time.Duration
	Airtable *Airtable
	Notion   *Notion
}

// Airtable config struct
type Airtable struct {
	APIKey         string
	BaseID         string
	BaseURL        string
	TasksTable     string
	ProjectsTable  string
	ActivityTable  string
	SummariesTable string
	View           string
}

// Notion config struct
type Notion struct {
	APIKey              string
	TasksDatabaseID     string
	ProjectsDatabaseID  string
	ActivityDatabaseID  string
	SummariesDatabaseID string
}

func getDataConfig(v *viper.Viper) (*Data, error) {
	provider := strings.ToLower(strings.TrimSpace(getStringOrDefault(v, "data.provider", ProviderAirtable)))
	if provider == "" {
		provider = ProviderAirtable
	}
	switch provider {
	case ProviderAirtable, ProviderNotion, ProviderMemory:
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}

	return &Data{
		Provider: provider,
		Timeout:  getDurationOrDefault(v, "data.timeout", 15*time.Second),
		Airtable: &Airtable{
			APIKey:         v.GetString("data.airtable.api_key"),
			BaseID:         v.GetString("data.airtable.base_id"),
			BaseURL:        getStringOrDefault(v, "data.airtable.base_url", "https://api.airtable.com"),
			TasksTable:     getStringOrDefault(v, "data.airtable.tasks_table", "Tasks"),
			ProjectsTable:  getStringOrDefault(v, "data.airtable.projects_table", "Projects"),
			ActivityTable:  getStringOrDefault(v, "data.airtable.activity_table", "User Activity"),
			SummariesTable: getStringOrDefault(v, "data.airtable.summaries_table", "Daily Summaries"),
			View:           getStringOrDefault(v, "data.airtable.view", "Grid view"),
		},
		Notion: &Notion{
			APIKey:              v.GetString("data.notion.api_key"),
			TasksDatabaseID:     v.GetString("data.notion.tasks_database_id"),
			ProjectsDatabaseID:  v.GetString("data.notion.projects_database_id"),
			ActivityDatabaseID:  v.GetString("data.notion.activity_database_id"),
			SummariesDatabaseID: v.GetString("data.notion.summaries_database_id"),
		},
	}, nil
}
