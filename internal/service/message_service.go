package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"carebridge/internal/dto"
	"carebridge/internal/models"
	"carebridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message body is empty")

// MessageService is the messaging feature on top of the analysis engine:
// every created message is analyzed once and stored with its result embedded.
type MessageService struct {
	analysis *AnalysisService
	msgRepo  *repository.MessageRepository
	logger   *zap.Logger
}

func NewMessageService(analysis *AnalysisService, msgRepo *repository.MessageRepository, logger *zap.Logger) *MessageService {
	return &MessageService{
		analysis: analysis,
		msgRepo:  msgRepo,
		logger:   logger,
	}
}

func (s *MessageService) Create(ctx context.Context, req *dto.CreateMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrEmptyMessage
	}

	previous, err := s.previousBodies(ctx, req.StudentID)
	if err != nil {
		// Analysis does not consult history yet; a missing timeline must not
		// block message creation.
		s.logger.Warn("Failed to load previous messages", zap.Error(err))
	}

	analysis, err := s.analysis.Analyze(ctx, req.Body, &dto.AnalysisContext{
		StudentID:        req.StudentID,
		SenderRole:       req.SenderRole,
		PreviousMessages: previous,
	})
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         uuid.New(),
		StudentID:  req.StudentID,
		SenderRole: req.SenderRole,
		Body:       req.Body,
		Analysis:   analysis,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.msgRepo.Save(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("Message created",
		zap.String("message_id", msg.ID.String()),
		zap.String("student_id", msg.StudentID),
		zap.Int("urgency_score", analysis.UrgencyScore),
	)
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return s.msgRepo.Get(ctx, id)
}

func (s *MessageService) ListByStudent(ctx context.Context, studentID string) ([]*models.Message, error) {
	return s.msgRepo.ListByStudent(ctx, studentID)
}

func (s *MessageService) previousBodies(ctx context.Context, studentID string) ([]string, error) {
	if studentID == "" {
		return nil, nil
	}
	history, err := s.msgRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	const historyLimit = 5
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	bodies := make([]string, 0, len(history))
	for _, msg := range history {
		bodies = append(bodies, msg.Body)
	}
	return bodies, nil
}
