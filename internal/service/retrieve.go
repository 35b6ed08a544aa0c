package service

import (
	"sort"
	"strings"

	"carebridge/internal/models"
)

// retrieveResponse picks the best catalog response for the primary intent.
// An item matches when its category equals the intent's category, or when
// one of its keywords appears inside any extracted entity value
// (case-insensitive). The highest-priority match wins; the sort is stable,
// so ties keep catalog insertion order. An empty result is a normal miss,
// not an error.
func retrieveResponse(intent models.Intent, entities []models.Entity, catalog []models.KnowledgeItem) string {
	var matched []models.KnowledgeItem
	for _, item := range catalog {
		if item.Category == string(intent.Category) || keywordMatchesEntities(item.Keywords, entities) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		return ""
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	if len(matched[0].Responses) == 0 {
		return ""
	}
	return matched[0].Responses[0]
}

func keywordMatchesEntities(keywords []string, entities []models.Entity) bool {
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		for _, entity := range entities {
			if strings.Contains(strings.ToLower(entity.Value), kw) {
				return true
			}
		}
	}
	return false
}
