package data

import (
	"bytes"
	"testing"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/data/airtable"
	"github.com/ncobase/voxtask/internal/data/memory"
	"github.com/ncobase/voxtask/internal/data/notion"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(&bytes.Buffer{})
}

func TestNewStoreSelectsProvider(t *testing.T) {
	cases := []struct {
		provider string
		check    func(t *testing.T, s Store)
	}{
		{config.ProviderAirtable, func(t *testing.T, s Store) { assert.IsType(t, &airtable.Client{}, s) }},
		{config.ProviderNotion, func(t *testing.T, s Store) { assert.IsType(t, &notion.Client{}, s) }},
		{config.ProviderMemory, func(t *testing.T, s Store) { assert.IsType(t, &memory.Store{}, s) }},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			s, err := NewStore(&config.Data{
				Provider: tc.provider,
				Airtable: &config.Airtable{APIKey: "k", BaseID: "app1", BaseURL: "http://localhost"},
				Notion:   &config.Notion{APIKey: "k", TasksDatabaseID: "db"},
			}, testLogger())
			require.NoError(t, err)
			tc.check(t, s)
		})
	}
}

func TestNewStoreErrors(t *testing.T) {
	_, err := NewStore(&config.Data{Provider: "mongo"}, testLogger())
	assert.ErrorContains(t, err, "unknown data provider")

	_, err = NewStore(&config.Data{Provider: config.ProviderAirtable, Airtable: &config.Airtable{}}, testLogger())
	assert.Error(t, err)
}
