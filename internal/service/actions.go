package service

import "carebridge/internal/models"

// deriveActions walks the action table and collects every follow-up action
// whose rule fires. Rules are independent and the aggregate list is not
// deduplicated across rules.
func deriveActions(intents []models.Intent, urgencyScore int) []string {
	var actions []string
	for _, rule := range actionRules {
		switch {
		case rule.MinScore > 0:
			if urgencyScore >= rule.MinScore {
				actions = append(actions, rule.Actions...)
			}
		default:
			if hasCategory(intents, rule.Category) {
				actions = append(actions, rule.Actions...)
			}
		}
	}
	return actions
}
