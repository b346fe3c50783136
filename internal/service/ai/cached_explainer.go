package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/kapu/subtitle-vocab-go/internal/constants"
	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"go.uber.org/zap"
)

// ExplanationCache is the subset of cache.CacheService used here.
type ExplanationCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedExplainer is a cache-aside wrapper around a VocabularyExplainer.
// Cache failures never fail the call; a miss falls through to the wrapped
// explainer.
type CachedExplainer struct {
	next      VocabularyExplainer
	cache     ExplanationCache
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCachedExplainer wraps next. namespace separates entries produced by
// different models.
func NewCachedExplainer(next VocabularyExplainer, cache ExplanationCache, namespace string, ttl time.Duration, logger *zap.Logger) *CachedExplainer {
	if ttl <= 0 {
		ttl = constants.CacheTTL.Explanation
	}
	return &CachedExplainer{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *CachedExplainer) Explain(ctx context.Context, query domain.VocabularyQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	key := c.key(query)

	var cached string
	found, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		c.logger.Warn("Explanation cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		c.logger.Debug("Explanation cache hit", zap.String("word", query.Word))
		return cached, nil
	}

	answer, err := c.next.Explain(ctx, query)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, answer, c.ttl); err != nil {
		c.logger.Warn("Explanation cache write failed", zap.String("key", key), zap.Error(err))
	}

	return answer, nil
}

func (c *CachedExplainer) key(query domain.VocabularyQuery) string {
	h := sha256.New()
	for _, part := range []string{c.namespace, query.EnglishSentence, query.ChineseSentence, query.Word} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return constants.CacheKeys.ExplanationPrefix + hex.EncodeToString(h.Sum(nil))
}
