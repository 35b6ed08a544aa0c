package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"carebridge/internal/models"

	"go.uber.org/zap"
)

// catalogKey is the single KV key the whole knowledge catalog lives under.
// The catalog is always read and written as a unit.
const catalogKey = "knowledge_catalog"

type CatalogRepository struct {
	kv     KV
	logger *zap.Logger
}

func NewCatalogRepository(kv KV, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		kv:     kv,
		logger: logger,
	}
}

// Load returns the stored catalog. The second return value is false when no
// catalog has been persisted yet, which callers treat as "seed required".
func (r *CatalogRepository) Load(ctx context.Context) ([]models.KnowledgeItem, bool, error) {
	raw, ok, err := r.kv.Get(ctx, catalogKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load knowledge catalog: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var items []models.KnowledgeItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode knowledge catalog: %w", err)
	}

	return items, true, nil
}

// Save replaces the whole stored catalog.
func (r *CatalogRepository) Save(ctx context.Context, items []models.KnowledgeItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode knowledge catalog: %w", err)
	}

	if err := r.kv.Set(ctx, catalogKey, raw); err != nil {
		return fmt.Errorf("failed to persist knowledge catalog: %w", err)
	}

	r.logger.Debug("Knowledge catalog persisted", zap.Int("items", len(items)))
	return nil
}
