package service

import (
	"context"
	"testing"

	"carebridge/internal/dto"
	"carebridge/internal/models"
	"carebridge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAnalysisService() *AnalysisService {
	return NewAnalysisService(newCatalogService(repository.NewMemoryKV()), zap.NewNop())
}

func TestAnalyze_CrisisScenario(t *testing.T) {
	ctx := context.Background()
	svc := newAnalysisService()

	result, err := svc.Analyze(ctx, "The student is having a meltdown and needs immediate help", nil)
	require.NoError(t, err)

	require.NotEmpty(t, result.Intents)
	assert.Equal(t, models.IntentCategoryCrisis, result.Intents[0].Category)
	assert.Equal(t, 0.90, result.Intents[0].Confidence)

	var urgencyValues []string
	for _, entity := range result.Entities {
		if entity.Type == models.EntityTypeUrgency {
			urgencyValues = append(urgencyValues, entity.Value)
		}
	}
	assert.Contains(t, urgencyValues, "immediate")

	assert.GreaterOrEqual(t, result.UrgencyScore, 9)
	assert.Contains(t, result.RequiredActions, "immediate_response_required")
	assert.Contains(t, result.RequiredActions, "notify_crisis_team")
	assert.Contains(t, result.RequiredActions, "document_incident")
	assert.NotEmpty(t, result.SuggestedResponse)
}

func TestAnalyze_PositiveScenario(t *testing.T) {
	ctx := context.Background()
	svc := newAnalysisService()

	result, err := svc.Analyze(ctx, "Everything went well today, great progress with communication", nil)
	require.NoError(t, err)

	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.Equal(t, 5, result.UrgencyScore)
	assert.Empty(t, result.RequiredActions)
}

func TestAnalyze_SeedsEmptyStoreOnFirstUse(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	catalog := newCatalogService(kv)
	svc := NewAnalysisService(catalog, zap.NewNop())

	_, err := svc.Analyze(ctx, "quick note about lunch", nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(catalog.Items()), 3)

	suggested, err := svc.GetSuggestedResponse(ctx,
		models.Intent{Type: "behavior_update", Confidence: 0.80, Category: models.IntentCategoryBehavioral},
		[]models.Entity{{Type: models.EntityTypeBehavior, Value: "stimming", Confidence: 0.8}},
	)
	require.NoError(t, err)
	assert.NotEmpty(t, suggested)
}

func TestAnalyze_Deterministic(t *testing.T) {
	ctx := context.Background()
	svc := newAnalysisService()
	text := "He was anxious and frustrated about homework, please call immediately"

	first, err := svc.Analyze(ctx, text, nil)
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, text, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_ContextIsAcceptedButUnused(t *testing.T) {
	ctx := context.Background()
	svc := newAnalysisService()
	text := "reading progress update"

	plain, err := svc.Analyze(ctx, text, nil)
	require.NoError(t, err)
	withContext, err := svc.Analyze(ctx, text, &dto.AnalysisContext{
		StudentID:        "student-1",
		SenderRole:       "parent",
		PreviousMessages: []string{"emergency yesterday"},
	})
	require.NoError(t, err)

	assert.Equal(t, plain, withContext)
}

func TestAnalyze_InitializationFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: repository.NewMemoryKV(), broken: true}
	svc := NewAnalysisService(newCatalogService(kv), zap.NewNop())

	_, err := svc.Analyze(ctx, "anything", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	// Subsequent calls re-attempt initialization.
	kv.broken = false
	result, err := svc.Analyze(ctx, "anything", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
}

// panickingCatalog initializes fine but blows up when the pipeline reads it.
type panickingCatalog struct{}

func (panickingCatalog) Initialize(context.Context) error { return nil }
func (panickingCatalog) Items() []models.KnowledgeItem { panic("catalog corrupted") }

func TestAnalyze_FaultFallsBackToNeutralResult(t *testing.T) {
	ctx := context.Background()
	svc := NewAnalysisService(panickingCatalog{}, zap.NewNop())

	// "meltdown" forces the retrieval step, which panics; the orchestrator
	// must swallow it and return the fixed fallback.
	result, err := svc.Analyze(ctx, "meltdown in the classroom", nil)
	require.NoError(t, err)

	assert.Empty(t, result.Intents)
	assert.Empty(t, result.Entities)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 5, result.UrgencyScore)
	assert.Empty(t, result.SuggestedResponse)
	assert.Empty(t, result.RequiredActions)
}
