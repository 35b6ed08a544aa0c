package service

import (
	"strings"

	"carebridge/internal/models"
)

const baseUrgency = 5

// scoreUrgency combines recognized intents and extracted entities into a
// single 0-10 score. Contributions are additive and independent; the result
// is clamped at both ends.
func scoreUrgency(intents []models.Intent, entities []models.Entity) int {
	score := baseUrgency

	if hasCategory(intents, models.IntentCategoryCrisis) {
		score += 4
	}
	if hasCategory(intents, models.IntentCategoryMedical) {
		score += 2
	}
	if hasCategory(intents, models.IntentCategoryBehavioral) {
		score++
	}

	for _, entity := range entities {
		switch entity.Type {
		case models.EntityTypeUrgency:
			score += 2
		case models.EntityTypeEmotion:
			if _, ok := escalatingEmotions[strings.ToLower(entity.Value)]; ok {
				score++
			}
		}
	}

	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}

func hasCategory(intents []models.Intent, category models.IntentCategory) bool {
	for _, intent := range intents {
		if intent.Category == category {
			return true
		}
	}
	return false
}
