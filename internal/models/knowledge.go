package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeItem is one record of the response catalog: a category tag with
// the keywords that select it, the response templates it can produce and a
// 0-10 priority weight used to rank competing items.
type KnowledgeItem struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	Responses []string  `json:"responses"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}
