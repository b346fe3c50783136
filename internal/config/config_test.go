package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("BACKFILL_REFERENCES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.deepseek.com", cfg.DeepSeek.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)
	assert.Equal(t, 2048, cfg.DeepSeek.MaxTokens)
	assert.Equal(t, 1.0, cfg.DeepSeek.Temperature)
	assert.Equal(t, "word", cfg.Supabase.Table)
	assert.Equal(t, "TBBT", cfg.Backfill.SeriesName)
	assert.Equal(t, 3, cfg.Backfill.Status)
	assert.Equal(t, 1, cfg.Backfill.Concurrency)
	assert.Equal(t, []ReferenceFile{
		{Label: "S01E02", Path: "SHDBZ S01E02.srt"},
		{Label: "S01E03", Path: "SHDBZ S01E03.srt"},
	}, cfg.Backfill.References)
	assert.NoError(t, cfg.ValidateExplain())
}

func TestLoadReferencesKeepOrder(t *testing.T) {
	t.Setenv("BACKFILL_REFERENCES", "E9=nine.srt, E1 = one.srt")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Backfill.References, 2)
	assert.Equal(t, "E9", cfg.Backfill.References[0].Label)
	assert.Equal(t, "one.srt", cfg.Backfill.References[1].Path)
}

func TestLoadRejectsMalformedReference(t *testing.T) {
	t.Setenv("BACKFILL_REFERENCES", "S01E02")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateExplainRequiresKey(t *testing.T) {
	cfg := &Config{DeepSeek: DeepSeekConfig{BaseURL: "https://api.deepseek.com", MaxTokens: 10}}
	assert.EqualError(t, cfg.ValidateExplain(), "DEEPSEEK_API_KEY is required")
}

func TestValidateBackfill(t *testing.T) {
	base := Config{
		Supabase: SupabaseConfig{URL: "https://example.supabase.co", Key: "anon", Table: "word"},
		Postgres: PostgresConfig{Host: "db", Password: "secret"},
		Backfill: BackfillConfig{
			References:  []ReferenceFile{{Label: "A", Path: "a.srt"}},
			Concurrency: 1,
		},
	}

	cfg := base
	assert.NoError(t, cfg.ValidateBackfill(StoreREST))
	assert.NoError(t, cfg.ValidateBackfill(StorePostgres))
	assert.Error(t, cfg.ValidateBackfill("mongo"))

	cfg = base
	cfg.Supabase.Key = ""
	assert.EqualError(t, cfg.ValidateBackfill(StoreREST), "SUPABASE_KEY is required")

	cfg = base
	cfg.Backfill.Concurrency = 0
	assert.Error(t, cfg.ValidateBackfill(StoreREST))
}
