package service

import (
	"testing"

	"carebridge/internal/models"

	"github.com/stretchr/testify/assert"
)

func crisisIntent() models.Intent {
	return models.Intent{Type: "crisis_alert", Confidence: 0.90, Category: models.IntentCategoryCrisis}
}

func urgencyEntity() models.Entity {
	return models.Entity{Type: models.EntityTypeUrgency, Value: "urgent", Confidence: 0.9, Start: 0, End: 6}
}

func TestScoreUrgency_Base(t *testing.T) {
	assert.Equal(t, 5, scoreUrgency(nil, nil))
}

func TestScoreUrgency_Additive(t *testing.T) {
	intents := []models.Intent{
		crisisIntent(),
		{Type: "medical_concern", Confidence: 0.85, Category: models.IntentCategoryMedical},
		{Type: "behavior_update", Confidence: 0.80, Category: models.IntentCategoryBehavioral},
	}
	// 5 + 4 + 2 + 1 = 12, clamped to 10.
	assert.Equal(t, 10, scoreUrgency(intents, nil))
}

func TestScoreUrgency_Entities(t *testing.T) {
	entities := []models.Entity{
		urgencyEntity(),
		{Type: models.EntityTypeEmotion, Value: "anxious", Confidence: 0.8},
		{Type: models.EntityTypeEmotion, Value: "happy", Confidence: 0.8},
		{Type: models.EntityTypeTime, Value: "today", Confidence: 0.7},
	}
	// 5 + 2 (urgency) + 1 (anxious); happy and today contribute nothing.
	assert.Equal(t, 8, scoreUrgency(nil, entities))
}

func TestScoreUrgency_EscalatingEmotionIsCaseInsensitive(t *testing.T) {
	entities := []models.Entity{
		{Type: models.EntityTypeEmotion, Value: "Overwhelmed", Confidence: 0.8},
	}
	assert.Equal(t, 6, scoreUrgency(nil, entities))
}

func TestScoreUrgency_ClampHoldsUnderAdversarialInput(t *testing.T) {
	entities := make([]models.Entity, 0, 100)
	for i := 0; i < 100; i++ {
		entities = append(entities, urgencyEntity())
	}

	score := scoreUrgency([]models.Intent{crisisIntent()}, entities)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 10)
	assert.Equal(t, 10, score)
}
