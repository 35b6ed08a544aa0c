package dto

// AnalysisContext carries caller-supplied context for an analysis run.
// SenderRole and PreviousMessages are accepted but not consulted by any
// rule yet; they are the extension point for context-aware scoring.
type AnalysisContext struct {
	StudentID        string   `json:"student_id,omitempty"`
	SenderRole       string   `json:"sender_role,omitempty"`
	PreviousMessages []string `json:"previous_messages,omitempty"`
}

type AnalyzeRequest struct {
	Text    string           `json:"text"`
	Context *AnalysisContext `json:"context,omitempty"`
}

// IngestItem is one knowledge-base entry submitted for ingestion. Keywords
// are optional; missing keywords are mined from the content.
type IngestItem struct {
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

type IngestRequest struct {
	Items []IngestItem `json:"items"`
}

type IngestResponse struct {
	Ingested int `json:"ingested"`
	Total    int `json:"total"`
}
