package service

import (
	"context"
	"errors"
	"testing"

	"carebridge/internal/dto"
	"carebridge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyKV fails every operation until healed.
type flakyKV struct {
	*repository.MemoryKV
	broken bool
}

var errKVDown = errors.New("kv down")

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.broken {
		return nil, false, errKVDown
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errKVDown
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func newCatalogService(kv repository.KV) *CatalogService {
	logger := zap.NewNop()
	return NewCatalogService(repository.NewCatalogRepository(kv, logger), logger)
}

func TestCatalogService_InitializeSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	svc := newCatalogService(kv)

	require.NoError(t, svc.Initialize(ctx))

	items := svc.Items()
	require.GreaterOrEqual(t, len(items), 3)

	categories := make(map[string]bool)
	for _, item := range items {
		categories[item.Category] = true
	}
	assert.True(t, categories["crisis"])
	assert.True(t, categories["behavioral"])
	assert.True(t, categories["academic"])

	// The seed must be persisted: a second service over the same store loads
	// the identical catalog instead of reseeding.
	other := newCatalogService(kv)
	require.NoError(t, other.Initialize(ctx))
	require.Len(t, other.Items(), len(items))
	assert.Equal(t, items[0].ID, other.Items()[0].ID)
}

func TestCatalogService_InitializeIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(repository.NewMemoryKV())

	require.NoError(t, svc.Initialize(ctx))
	before := svc.Items()
	require.NoError(t, svc.Initialize(ctx))
	assert.Len(t, svc.Items(), len(before))
}

func TestCatalogService_InitializeRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: repository.NewMemoryKV(), broken: true}
	svc := newCatalogService(kv)

	err := svc.Initialize(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	kv.broken = false
	require.NoError(t, svc.Initialize(ctx))
	assert.NotEmpty(t, svc.Items())
}

func TestCatalogService_IngestMinesKeywords(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(repository.NewMemoryKV())
	require.NoError(t, svc.Initialize(ctx))
	seeded := len(svc.Items())

	require.NoError(t, svc.Ingest(ctx, []dto.IngestItem{
		{
			Content:  "Noise-cancelling headphones help with loud assemblies, loud hallways and other noise.",
			Category: "sensory",
		},
	}))

	items := svc.Items()
	require.Len(t, items, seeded+1)
	got := items[len(items)-1]

	// Tokens are lowercased, stripped of punctuation, longer than 3 chars,
	// stop-word filtered and deduplicated in first-seen order.
	assert.Equal(t, []string{"noise", "cancelling", "headphones", "help", "loud", "assemblies", "hallways"}, got.Keywords)
	assert.Equal(t, responseTemplates["sensory"], got.Responses)
	assert.Equal(t, defaultPriority, got.Priority)
}

func TestCatalogService_IngestPriorities(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(repository.NewMemoryKV())
	require.NoError(t, svc.Initialize(ctx))

	require.NoError(t, svc.Ingest(ctx, []dto.IngestItem{
		{Content: "quiet routine note", Category: "routine"},
		{Content: "call immediately about medication", Category: "medical", Keywords: []string{"medication"}},
		{Content: "urgent crisis protocol", Category: "crisis"},
		{Content: "unknown category note", Category: "mystery"},
	}))

	items := svc.Items()
	n := len(items)
	require.GreaterOrEqual(t, n, 4)

	routine := items[n-4]
	medical := items[n-3]
	crisis := items[n-2]
	unknown := items[n-1]

	assert.Equal(t, 4, routine.Priority)
	// +2 urgency bump from "immediately" in the content.
	assert.Equal(t, 10, medical.Priority)
	assert.Equal(t, []string{"medication"}, medical.Keywords)
	// 10 + 2 stays capped at 10.
	assert.Equal(t, 10, crisis.Priority)
	assert.Equal(t, defaultPriority, unknown.Priority)
	assert.Equal(t, genericTemplates, unknown.Responses)

	for _, item := range items {
		assert.GreaterOrEqual(t, item.Priority, 0)
		assert.LessOrEqual(t, item.Priority, 10)
	}
}

func TestCatalogService_IngestPersistsWholeCatalog(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	svc := newCatalogService(kv)
	require.NoError(t, svc.Initialize(ctx))

	require.NoError(t, svc.Ingest(ctx, []dto.IngestItem{
		{Content: "reading progress log", Category: "academic"},
	}))

	reloaded := newCatalogService(kv)
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Len(t, reloaded.Items(), len(svc.Items()))
}

func TestCatalogService_IngestPropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: repository.NewMemoryKV()}
	svc := newCatalogService(kv)
	require.NoError(t, svc.Initialize(ctx))
	before := len(svc.Items())

	kv.broken = true
	err := svc.Ingest(ctx, []dto.IngestItem{
		{Content: "never stored", Category: "routine"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	// The in-memory catalog must not keep items the store rejected.
	assert.Len(t, svc.Items(), before)
}
