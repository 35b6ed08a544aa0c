package service

import (
	"context"
	"testing"

	"carebridge/internal/dto"
	"carebridge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMessageService() *MessageService {
	kv := repository.NewMemoryKV()
	logger := zap.NewNop()
	analysis := NewAnalysisService(newCatalogService(kv), logger)
	return NewMessageService(analysis, repository.NewMessageRepository(kv, logger), logger)
}

func TestMessageService_CreateEmbedsAnalysis(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService()

	msg, err := svc.Create(ctx, &dto.CreateMessageRequest{
		StudentID:  "student-7",
		SenderRole: "parent",
		Body:       "He had a meltdown before lunch, this is urgent",
	})
	require.NoError(t, err)
	require.NotNil(t, msg.Analysis)
	assert.GreaterOrEqual(t, msg.Analysis.UrgencyScore, 9)
	assert.NotEqual(t, "", msg.ID.String())

	stored, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.Body, stored.Body)
	assert.Equal(t, msg.Analysis.UrgencyScore, stored.Analysis.UrgencyScore)
}

func TestMessageService_CreateRejectsEmptyBody(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService()

	_, err := svc.Create(ctx, &dto.CreateMessageRequest{StudentID: "s", Body: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestMessageService_ListByStudentKeepsOrder(t *testing.T) {
	ctx := context.Background()
	svc := newMessageService()

	bodies := []string{"first update", "second update", "third update"}
	for _, body := range bodies {
		_, err := svc.Create(ctx, &dto.CreateMessageRequest{
			StudentID:  "student-1",
			SenderRole: "teacher",
			Body:       body,
		})
		require.NoError(t, err)
	}

	messages, err := svc.ListByStudent(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, msg := range messages {
		assert.Equal(t, bodies[i], msg.Body)
	}

	other, err := svc.ListByStudent(ctx, "student-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
