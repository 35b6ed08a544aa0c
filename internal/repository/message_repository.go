package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"carebridge/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository stores each message under its own key and keeps a
// per-student index of message ids so student timelines can be read back.
type MessageRepository struct {
	kv     KV
	logger *zap.Logger
}

func NewMessageRepository(kv KV, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		kv:     kv,
		logger: logger,
	}
}

func messageKey(id uuid.UUID) string {
	return "message:" + id.String()
}

func studentIndexKey(studentID string) string {
	return "student_messages:" + studentID
}

func (r *MessageRepository) Save(ctx context.Context, msg *models.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if err := r.kv.Set(ctx, messageKey(msg.ID), raw); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}

	if msg.StudentID == "" {
		return nil
	}

	// Read-modify-write on the index; concurrent saves for the same student
	// can lose an entry (last write wins, same as the catalog).
	ids, err := r.loadIndex(ctx, msg.StudentID)
	if err != nil {
		return err
	}
	ids = append(ids, msg.ID)

	rawIndex, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode message index: %w", err)
	}
	if err := r.kv.Set(ctx, studentIndexKey(msg.StudentID), rawIndex); err != nil {
		return fmt.Errorf("failed to persist message index: %w", err)
	}

	return nil
}

func (r *MessageRepository) Get(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	raw, ok, err := r.kv.Get(ctx, messageKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	if !ok {
		return nil, ErrMessageNotFound
	}

	var msg models.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	return &msg, nil
}

// ListByStudent returns the student's messages in insertion order. Index
// entries whose message record is missing are skipped rather than failing
// the whole listing.
func (r *MessageRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Message, error) {
	ids, err := r.loadIndex(ctx, studentID)
	if err != nil {
		return nil, err
	}

	messages := make([]*models.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := r.Get(ctx, id)
		if errors.Is(err, ErrMessageNotFound) {
			r.logger.Warn("Indexed message missing from store",
				zap.String("student_id", studentID),
				zap.String("message_id", id.String()),
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (r *MessageRepository) loadIndex(ctx context.Context, studentID string) ([]uuid.UUID, error) {
	raw, ok, err := r.kv.Get(ctx, studentIndexKey(studentID))
	if err != nil {
		return nil, fmt.Errorf("failed to load message index: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode message index: %w", err)
	}

	return ids, nil
}
