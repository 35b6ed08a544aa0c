package service

import (
	"regexp"
	"strings"

	"carebridge/internal/models"
)

// intentRule is one row of the intent table: a disjunctive set of whole-word
// triggers mapped to a fixed type/category/confidence tuple. Rules are
// evaluated in table order and are non-exclusive.
type intentRule struct {
	Type       string
	Category   models.IntentCategory
	Confidence float64
	Triggers   []string
}

var intentRules = []intentRule{
	{
		Type:       "crisis_alert",
		Category:   models.IntentCategoryCrisis,
		Confidence: 0.90,
		Triggers:   []string{"emergency", "crisis", "meltdown", "aggressive", "hurt", "danger", "unsafe", "self-harm", "violent"},
	},
	{
		Type:       "behavior_update",
		Category:   models.IntentCategoryBehavioral,
		Confidence: 0.80,
		Triggers:   []string{"stimming", "tantrum", "disruptive", "calm", "focus", "attention", "outburst", "behavior"},
	},
	{
		Type:       "medical_concern",
		Category:   models.IntentCategoryMedical,
		Confidence: 0.85,
		Triggers:   []string{"medication", "sick", "pain", "allergy", "seizure", "fever", "nurse"},
	},
	{
		Type:       "academic_update",
		Category:   models.IntentCategoryAcademic,
		Confidence: 0.70,
		Triggers:   []string{"homework", "reading", "math", "progress", "assignment", "learning", "grades"},
	},
	{
		Type:       "support_request",
		Category:   models.IntentCategorySupport,
		Confidence: 0.75,
		Triggers:   []string{"need help", "guidance", "advice", "support", "struggling", "resources"},
	},
	{
		Type:       "routine_update",
		Category:   models.IntentCategoryRoutine,
		Confidence: 0.60,
		Triggers:   []string{"schedule", "transition", "lunch", "recess", "pickup", "drop-off", "arrival"},
	},
}

// entityRule is one row of the entity table: a lexicon scanned globally over
// the raw text, producing a span per non-overlapping match.
type entityRule struct {
	Type       models.EntityType
	Confidence float64
	Words      []string
}

var urgencyWords = []string{"immediately", "immediate", "urgent", "urgently", "asap", "now", "emergency", "critical", "right away"}

var entityRules = []entityRule{
	{
		Type:       models.EntityTypeEmotion,
		Confidence: 0.8,
		Words:      []string{"happy", "sad", "angry", "frustrated", "anxious", "excited", "calm", "upset", "overwhelmed", "scared", "worried"},
	},
	{
		Type:       models.EntityTypeUrgency,
		Confidence: 0.9,
		Words:      urgencyWords,
	},
	{
		Type:       models.EntityTypeTime,
		Confidence: 0.7,
		Words:      []string{"today", "tomorrow", "yesterday", "tonight", "morning", "afternoon", "evening", "this week", "next week"},
	},
}

// urgencyMarkerPattern is reused by ingestion to bump the priority of items
// whose source content carries urgent wording.
var urgencyMarkerPattern = wordPattern(urgencyWords)

// Emotions that raise the urgency score when extracted as entities.
var escalatingEmotions = map[string]struct{}{
	"angry":       {},
	"frustrated":  {},
	"anxious":     {},
	"overwhelmed": {},
}

var (
	positiveWords = []string{"great", "good", "well", "wonderful", "excellent", "happy", "progress", "improved", "success", "proud", "enjoyed"}
	negativeWords = []string{"bad", "worse", "terrible", "awful", "problem", "difficult", "struggling", "upset", "refused", "concern"}
)

// actionRule is one row of the required-action table. Rules are evaluated
// independently; the aggregate list is intentionally not deduplicated.
type actionRule struct {
	MinScore int
	Category models.IntentCategory
	Actions  []string
}

var actionRules = []actionRule{
	{MinScore: 8, Actions: []string{"immediate_response_required"}},
	{Category: models.IntentCategoryCrisis, Actions: []string{"notify_crisis_team", "document_incident"}},
	{Category: models.IntentCategoryMedical, Actions: []string{"notify_school_nurse", "contact_parent"}},
	{Category: models.IntentCategoryBehavioral, Actions: []string{"log_behavior_incident", "review_intervention_plan"}},
	{MinScore: 6, Actions: []string{"escalate_to_supervisor"}},
}

// categoryPriorities ranks knowledge categories for ingested items.
// Categories outside the table get defaultPriority.
var categoryPriorities = map[string]int{
	"crisis":     10,
	"medical":    9,
	"behavioral": 7,
	"support":    6,
	"academic":   5,
	"routine":    4,
}

const (
	defaultPriority = 5
	maxPriority     = 10
)

// responseTemplates maps a knowledge category to the templates generated for
// ingested items of that category. Unknown categories fall back to
// genericTemplates.
var responseTemplates = map[string][]string{
	"crisis": {
		"This sounds urgent. The crisis team has been notified and someone will reach out right away.",
		"Thank you for flagging this immediately. Please keep the student supervised while we respond.",
	},
	"medical": {
		"The school nurse has been informed and will follow up on this today.",
		"Please share any medication or allergy details so the health record stays current.",
	},
	"behavioral": {
		"Thank you for the update. We will log this and review the current intervention plan.",
		"Noted. A calm, low-stimulation space often helps; we will coordinate the next steps with you.",
	},
	"sensory": {
		"We will adjust the sensory environment and check in with the student shortly.",
		"Thanks for letting us know. Sensory breaks have been added to today's plan.",
	},
	"academic": {
		"Thanks for the academic update. We will share it with the teaching team.",
		"We will review the current learning goals and send home an updated progress note.",
	},
	"support": {
		"We hear you. A support coordinator will get in touch to talk through options.",
		"Thank you for reaching out. Here are some resources while we set up a conversation.",
	},
	"routine": {
		"Noted, the daily schedule has been updated accordingly.",
		"Thanks for the heads-up. We will prepare the student for the change in routine.",
	},
}

var genericTemplates = []string{
	"Thank you for your message. A member of the care team will follow up with you soon.",
	"We have recorded this update in the student's care log.",
}

// stopWords excluded from keyword mining during ingestion.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "back": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "between": {},
	"both": {}, "could": {}, "does": {}, "doing": {}, "down": {},
	"during": {}, "each": {}, "even": {}, "from": {}, "further": {},
	"have": {}, "having": {}, "here": {}, "into": {}, "just": {},
	"more": {}, "most": {}, "much": {}, "need": {}, "needs": {},
	"only": {}, "other": {}, "over": {}, "same": {}, "should": {},
	"since": {}, "some": {}, "still": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"under": {}, "until": {}, "very": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

// wordPattern builds a case-insensitive whole-word alternation for a lexicon.
// Multi-word triggers are quoted literally, so "need help" matches as a phrase.
func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}
