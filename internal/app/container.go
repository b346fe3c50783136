package app

import (
	"fmt"
	"net/http"

	"github.com/kapu/subtitle-vocab-go/internal/config"
	"github.com/kapu/subtitle-vocab-go/internal/service/ai"
	"github.com/kapu/subtitle-vocab-go/internal/service/cache"
	"github.com/kapu/subtitle-vocab-go/internal/service/database"
	"github.com/kapu/subtitle-vocab-go/internal/service/reconcile"
	"github.com/kapu/subtitle-vocab-go/internal/service/word"
	"go.uber.org/zap"
)

// Container bundles assembled services for one binary. Close releases every
// connection opened while building it.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Explainer ai.VocabularyExplainer
	Store     reconcile.Store

	closers []func()
}

func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// BuildExplainer wires the chat completion client and, when enabled, the
// Redis explanation cache in front of it. A cache that cannot be reached is
// logged and skipped.
func BuildExplainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if err := checkArgs(cfg, logger); err != nil {
		return nil, err
	}

	container := &Container{Config: cfg, Logger: logger}

	explainer := ai.NewExplainer(ai.ExplainerConfig{
		APIKey:      cfg.DeepSeek.APIKey,
		BaseURL:     cfg.DeepSeek.BaseURL,
		Model:       cfg.DeepSeek.Model,
		MaxTokens:   cfg.DeepSeek.MaxTokens,
		Temperature: &cfg.DeepSeek.Temperature,
	}, logger)
	container.Explainer = explainer

	if !cfg.Explain.CacheEnabled {
		return container, nil
	}

	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Warn("Explanation cache unavailable, continuing without it", zap.Error(err))
		return container, nil
	}
	container.closers = append(container.closers, func() {
		_ = cacheSvc.Close()
	})

	container.Explainer = ai.NewCachedExplainer(explainer, cacheSvc, explainer.Model(), cfg.Explain.CacheTTL, logger)
	return container, nil
}

// BuildStore wires the word table backend selected by kind.
func BuildStore(cfg *config.Config, kind string, logger *zap.Logger) (*Container, error) {
	if err := checkArgs(cfg, logger); err != nil {
		return nil, err
	}

	container := &Container{Config: cfg, Logger: logger}

	switch kind {
	case config.StoreREST:
		container.Store = word.NewRESTClient(&http.Client{}, word.RESTConfig{
			BaseURL: cfg.Supabase.URL,
			APIKey:  cfg.Supabase.Key,
			Table:   cfg.Supabase.Table,
		}, logger)
	case config.StorePostgres:
		postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", err)
		}
		container.closers = append(container.closers, func() {
			_ = postgresSvc.Close()
		})
		container.Store = word.NewPostgresRepository(postgresSvc, cfg.Supabase.Table, logger)
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}

	return container, nil
}

func checkArgs(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil {
		return fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return fmt.Errorf("logger must not be nil")
	}
	return nil
}
