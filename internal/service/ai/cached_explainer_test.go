package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExplainer struct {
	answer string
	err    error
	calls  []domain.VocabularyQuery
}

func (f *fakeExplainer) Explain(_ context.Context, query domain.VocabularyQuery) (string, error) {
	f.calls = append(f.calls, query)
	return f.answer, f.err
}

type fakeCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	f.ttls[key] = ttl
	return nil
}

func TestCachedExplainerStoresAndReuses(t *testing.T) {
	next := &fakeExplainer{answer: "准备好了"}
	cache := newFakeCache()
	cached := NewCachedExplainer(next, cache, "deepseek-chat", time.Hour, zap.NewNop())

	first, err := cached.Explain(context.Background(), marathonQuery)
	require.NoError(t, err)
	second, err := cached.Explain(context.Background(), marathonQuery)
	require.NoError(t, err)

	assert.Equal(t, "准备好了", first)
	assert.Equal(t, first, second)
	assert.Len(t, next.calls, 1)
	require.Len(t, cache.ttls, 1)
	for key, ttl := range cache.ttls {
		assert.Contains(t, key, "vocab:explain:")
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestCachedExplainerKeysOnAllInputs(t *testing.T) {
	next := &fakeExplainer{answer: "ok"}
	cached := NewCachedExplainer(next, newFakeCache(), "deepseek-chat", 0, zap.NewNop())

	other := marathonQuery
	other.Word = "superman"

	_, err := cached.Explain(context.Background(), marathonQuery)
	require.NoError(t, err)
	_, err = cached.Explain(context.Background(), other)
	require.NoError(t, err)

	assert.Len(t, next.calls, 2)
	assert.NotEqual(t, cached.key(marathonQuery), cached.key(other))
}

func TestCachedExplainerIgnoresCacheFailures(t *testing.T) {
	next := &fakeExplainer{answer: "ok"}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	cached := NewCachedExplainer(next, cache, "deepseek-chat", time.Minute, zap.NewNop())

	answer, err := cached.Explain(context.Background(), marathonQuery)
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Len(t, next.calls, 1)
}

func TestCachedExplainerDoesNotCacheErrors(t *testing.T) {
	next := &fakeExplainer{err: errors.New("HTTP error! status: 500")}
	cache := newFakeCache()
	cached := NewCachedExplainer(next, cache, "deepseek-chat", time.Minute, zap.NewNop())

	_, err := cached.Explain(context.Background(), marathonQuery)
	assert.Error(t, err)
	assert.Empty(t, cache.entries)
}
