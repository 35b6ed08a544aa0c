package service

import (
	"strings"

	"carebridge/internal/models"
)

// classifySentiment is a lexicon vote: occurrences of positive words against
// occurrences of negative words, counted by substring containment. Ties,
// including zero hits on both sides, resolve to neutral.
func classifySentiment(lowered string) models.Sentiment {
	var positive, negative int
	for _, w := range positiveWords {
		positive += strings.Count(lowered, w)
	}
	for _, w := range negativeWords {
		negative += strings.Count(lowered, w)
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
