package service

import (
	"regexp"

	"carebridge/internal/models"
)

var entityPatterns = compileEntityPatterns()

func compileEntityPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(entityRules))
	for i, rule := range entityRules {
		patterns[i] = wordPattern(rule.Words)
	}
	return patterns
}

// extractEntities runs every entity lexicon as a global scan over the raw
// text. Scans are independent, so a word present in two lexicons yields two
// entities. Spans are half-open byte ranges into the original text and the
// value keeps the original casing.
func extractEntities(text string) []models.Entity {
	var entities []models.Entity
	for i, rule := range entityRules {
		for _, span := range entityPatterns[i].FindAllStringIndex(text, -1) {
			entities = append(entities, models.Entity{
				Type:       rule.Type,
				Value:      text[span[0]:span[1]],
				Confidence: rule.Confidence,
				Start:      span[0],
				End:        span[1],
			})
		}
	}
	return entities
}
