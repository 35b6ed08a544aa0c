package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one caregiver communication about a student, stored together
// with the analysis computed when it was created.
type Message struct {
	ID         uuid.UUID       `json:"id"`
	StudentID  string          `json:"student_id"`
	SenderRole string          `json:"sender_role"`
	Body       string          `json:"body"`
	Analysis   *AnalysisResult `json:"analysis,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
