package models

// IntentCategory groups recognized intents by the care workflow they belong to.
type IntentCategory string

const (
	IntentCategoryCrisis     IntentCategory = "crisis"
	IntentCategoryMedical    IntentCategory = "medical"
	IntentCategoryBehavioral IntentCategory = "behavioral"
	IntentCategoryAcademic   IntentCategory = "academic"
	IntentCategorySupport    IntentCategory = "support"
	IntentCategoryRoutine    IntentCategory = "routine"
)

// Intent is one classified purpose of a caregiver message. Confidence is a
// fixed constant of the rule that produced it, not a learned probability.
type Intent struct {
	Type       string         `json:"type"`
	Confidence float64        `json:"confidence"`
	Category   IntentCategory `json:"category"`
}

// EntityType tags an extracted span of text.
type EntityType string

const (
	EntityTypeEmotion     EntityType = "emotion"
	EntityTypeUrgency     EntityType = "urgency"
	EntityTypeTime        EntityType = "time"
	EntityTypeStudentName EntityType = "student_name"
	EntityTypeLocation    EntityType = "location"
	EntityTypeBehavior    EntityType = "behavior"
)

// Entity is a typed literal matched inside the source text. Start and End
// form a half-open byte range [Start, End) into the analyzed text, so
// text[Start:End] == Value.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
}

// Sentiment is the coarse lexicon-vote classification of a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AnalysisResult is the full output of one analysis pass over a message.
// It is computed once, embedded in the message record and never mutated.
// SuggestedResponse is empty when no catalog item matched.
type AnalysisResult struct {
	Intents           []Intent  `json:"intents"`
	Entities          []Entity  `json:"entities"`
	Sentiment         Sentiment `json:"sentiment"`
	UrgencyScore      int       `json:"urgency_score"`
	SuggestedResponse string    `json:"suggested_response,omitempty"`
	RequiredActions   []string  `json:"required_actions"`
}
