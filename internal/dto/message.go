package dto

type CreateMessageRequest struct {
	StudentID  string `json:"student_id"`
	SenderRole string `json:"sender_role"`
	Body       string `json:"body"`
}
