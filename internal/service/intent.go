package service

import (
	"regexp"

	"carebridge/internal/models"
)

// One compiled trigger pattern per intent rule, in table order.
var intentPatterns = compileIntentPatterns()

func compileIntentPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(intentRules))
	for i, rule := range intentRules {
		patterns[i] = wordPattern(rule.Triggers)
	}
	return patterns
}

// recognizeIntents matches the lowercased text against every intent rule.
// Rules are non-exclusive: a message can carry several intents, and the
// output preserves rule order.
func recognizeIntents(lowered string) []models.Intent {
	var intents []models.Intent
	for i, rule := range intentRules {
		if intentPatterns[i].MatchString(lowered) {
			intents = append(intents, models.Intent{
				Type:       rule.Type,
				Confidence: rule.Confidence,
				Category:   rule.Category,
			})
		}
	}
	return intents
}
