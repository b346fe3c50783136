package app

import (
	"testing"

	"github.com/kapu/subtitle-vocab-go/internal/config"
	"github.com/kapu/subtitle-vocab-go/internal/service/ai"
	"github.com/kapu/subtitle-vocab-go/internal/service/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		DeepSeek: config.DeepSeekConfig{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1", Model: "deepseek-chat", MaxTokens: 2048, Temperature: 1},
		Supabase: config.SupabaseConfig{URL: "http://127.0.0.1:1", Key: "anon", Table: "word"},
		Redis:    config.RedisConfig{Host: "127.0.0.1", Port: 1},
	}
}

func TestBuildExplainerWithoutCache(t *testing.T) {
	c, err := BuildExplainer(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Explainer.(*ai.Explainer)
	assert.True(t, ok)
}

func TestBuildExplainerFallsBackWhenCacheUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Explain.CacheEnabled = true

	c, err := BuildExplainer(cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Explainer.(*ai.Explainer)
	assert.True(t, ok)
}

func TestBuildStoreREST(t *testing.T) {
	c, err := BuildStore(testConfig(), config.StoreREST, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Store.(*word.RESTClient)
	assert.True(t, ok)
}

func TestBuildStoreRejectsUnknownKind(t *testing.T) {
	_, err := BuildStore(testConfig(), "mongo", zap.NewNop())
	assert.Error(t, err)
}

func TestBuildRequiresConfigAndLogger(t *testing.T) {
	_, err := BuildExplainer(nil, zap.NewNop())
	assert.Error(t, err)
	_, err = BuildStore(testConfig(), config.StoreREST, nil)
	assert.Error(t, err)
}
