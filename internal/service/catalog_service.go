package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"carebridge/internal/dto"
	"carebridge/internal/models"
	"carebridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

// CatalogService owns the in-memory knowledge catalog. The catalog is loaded
// once, seeded when the store is empty, and replaced wholesale on every
// ingest. Reads always see a complete snapshot; the load-append-persist
// sequence itself is not atomic across concurrent ingests (last write wins
// at the storage layer).
type CatalogService struct {
	repo   *repository.CatalogRepository
	logger *zap.Logger

	mu          sync.RWMutex
	items       []models.KnowledgeItem
	initialized bool
}

func NewCatalogService(repo *repository.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// Initialize loads the catalog from the store, seeding it with the default
// items when nothing has been persisted yet. It is idempotent; a failed
// attempt leaves the service uninitialized so the next call retries.
func (s *CatalogService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	items, ok, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !ok || len(items) == 0 {
		items = defaultCatalog()
		if err := s.repo.Save(ctx, items); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		s.logger.Info("Knowledge catalog seeded with defaults", zap.Int("items", len(items)))
	}

	s.items = items
	s.initialized = true
	s.logger.Info("Knowledge catalog initialized", zap.Int("items", len(items)))
	return nil
}

// Items returns the current catalog snapshot. The returned slice is replaced
// wholesale on ingest and must not be mutated by callers.
func (s *CatalogService) Items() []models.KnowledgeItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Ingest appends new knowledge items to the catalog and persists the whole
// catalog back to the store. Missing keywords are mined from the content;
// responses and priority come from the category tables.
func (s *CatalogService) Ingest(ctx context.Context, items []dto.IngestItem) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	now := time.Now().UTC()
	created := make([]models.KnowledgeItem, 0, len(items))
	for _, item := range items {
		created = append(created, buildKnowledgeItem(item, now))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.KnowledgeItem, 0, len(s.items)+len(created))
	next = append(next, s.items...)
	next = append(next, created...)

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.items = next
	s.logger.Info("Knowledge items ingested",
		zap.Int("added", len(created)),
		zap.Int("total", len(next)),
	)
	return nil
}

func buildKnowledgeItem(item dto.IngestItem, now time.Time) models.KnowledgeItem {
	keywords := item.Keywords
	if len(keywords) == 0 {
		keywords = mineKeywords(item.Content)
	}

	responses, ok := responseTemplates[item.Category]
	if !ok {
		responses = genericTemplates
	}

	priority, ok := categoryPriorities[item.Category]
	if !ok {
		priority = defaultPriority
	}
	// Urgent wording in the source content bumps the item above its peers.
	if urgencyMarkerPattern.MatchString(strings.ToLower(item.Content)) {
		priority += 2
	}
	if priority > maxPriority {
		priority = maxPriority
	}

	return models.KnowledgeItem{
		ID:        uuid.New(),
		Category:  item.Category,
		Content:   item.Content,
		Keywords:  keywords,
		Responses: responses,
		Priority:  priority,
		CreatedAt: now,
	}
}

// mineKeywords tokenizes the content, drops punctuation, short tokens and
// stop words, and returns the remaining distinct tokens in first-seen order.
func mineKeywords(content string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	var keywords []string
	for _, token := range tokens {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}

// defaultCatalog is the seed set written when the store holds no catalog.
func defaultCatalog() []models.KnowledgeItem {
	now := time.Now().UTC()
	seed := []struct {
		category string
		content  string
		keywords []string
		priority int
	}{
		{
			category: "crisis",
			content:  "During a meltdown or other crisis, keep the student and others safe, reduce demands and alert the crisis team immediately.",
			keywords: []string{"meltdown", "crisis", "emergency", "aggressive", "danger"},
			priority: 10,
		},
		{
			category: "behavioral",
			content:  "Stimming is usually self-regulation. Offer sensory breaks and a calm space instead of interrupting the behavior.",
			keywords: []string{"stimming", "sensory", "self-regulation", "calm"},
			priority: 7,
		},
		{
			category: "medical",
			content:  "Medication changes, allergies and illness must reach the school nurse the same day they are reported.",
			keywords: []string{"medication", "allergy", "sick", "nurse"},
			priority: 9,
		},
		{
			category: "academic",
			content:  "Share homework expectations and reading or math progress with the family every week.",
			keywords: []string{"homework", "reading", "math", "progress"},
			priority: 5,
		},
		{
			category: "support",
			content:  "Families asking for guidance or advice are connected with a support coordinator and local resources.",
			keywords: []string{"guidance", "advice", "resources", "support"},
			priority: 6,
		},
	}

	items := make([]models.KnowledgeItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, models.KnowledgeItem{
			ID:        uuid.New(),
			Category:  s.category,
			Content:   s.content,
			Keywords:  s.keywords,
			Responses: responseTemplates[s.category],
			Priority:  s.priority,
			CreatedAt: now,
		})
	}
	return items
}
