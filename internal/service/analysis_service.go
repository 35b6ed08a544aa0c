package service

import (
	"context"
	"strings"

	"carebridge/internal/dto"
	"carebridge/internal/models"

	"go.uber.org/zap"
)

// Catalog is the knowledge source the orchestrator reads from. It is an
// interface so tests can inject fakes, including failing ones.
type Catalog interface {
	Initialize(ctx context.Context) error
	Items() []models.KnowledgeItem
}

// AnalysisService sequences the analysis pipeline: intent recognition,
// entity extraction and sentiment run independently over the text, then the
// urgency scorer, response retriever and action determiner consume their
// outputs. A fault anywhere in the pipeline is recovered and replaced with
// the fixed fallback result; callers of Analyze never see it as an error.
type AnalysisService struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewAnalysisService(catalog Catalog, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		catalog: catalog,
		logger:  logger,
	}
}

// Initialize makes sure the knowledge catalog is loaded. Idempotent.
func (s *AnalysisService) Initialize(ctx context.Context) error {
	return s.catalog.Initialize(ctx)
}

// Analyze classifies one message. The context is accepted for future
// context-aware scoring; no current rule consults it. The only error it can
// return is a catalog initialization failure on first use.
func (s *AnalysisService) Analyze(ctx context.Context, text string, msgCtx *dto.AnalysisContext) (*models.AnalysisResult, error) {
	if err := s.catalog.Initialize(ctx); err != nil {
		return nil, err
	}

	if msgCtx != nil && msgCtx.StudentID != "" {
		s.logger.Debug("Analyzing message", zap.String("student_id", msgCtx.StudentID))
	}

	return s.runPipeline(text), nil
}

// GetSuggestedResponse retrieves the best catalog response for an already
// recognized intent. An empty string is a normal miss.
func (s *AnalysisService) GetSuggestedResponse(ctx context.Context, intent models.Intent, entities []models.Entity) (string, error) {
	if err := s.catalog.Initialize(ctx); err != nil {
		return "", err
	}
	return retrieveResponse(intent, entities, s.catalog.Items()), nil
}

func (s *AnalysisService) runPipeline(text string) (result *models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Analysis pipeline fault, returning fallback result",
				zap.Any("fault", r),
			)
			result = fallbackResult()
		}
	}()

	lowered := strings.ToLower(text)

	intents := recognizeIntents(lowered)
	entities := extractEntities(text)
	sentiment := classifySentiment(lowered)

	score := scoreUrgency(intents, entities)

	var suggested string
	if len(intents) > 0 {
		suggested = retrieveResponse(intents[0], entities, s.catalog.Items())
	}

	actions := deriveActions(intents, score)

	if intents == nil {
		intents = []models.Intent{}
	}
	if entities == nil {
		entities = []models.Entity{}
	}
	if actions == nil {
		actions = []string{}
	}

	return &models.AnalysisResult{
		Intents:           intents,
		Entities:          entities,
		Sentiment:         sentiment,
		UrgencyScore:      score,
		SuggestedResponse: suggested,
		RequiredActions:   actions,
	}
}

// fallbackResult is the neutral result returned when the pipeline faults.
// It must never fail to construct.
func fallbackResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Intents:         []models.Intent{},
		Entities:        []models.Entity{},
		Sentiment:       models.SentimentNeutral,
		UrgencyScore:    baseUrgency,
		RequiredActions: []string{},
	}
}
