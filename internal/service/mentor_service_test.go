package service

import (
	"context"
	"testing"
	"time"

	"edumate-be/internal/constant"
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/repository/memory"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentorService_Conversation(t *testing.T) {
	provider := &fakeProvider{reply: "Start with HTTP and SQL."}
	svc := NewMentorService(provider, memory.NewChatTranscriptRepository(time.Hour, 40), clock.Fixed{At: testNow}, logger.NewNopLogger())
	owner := uuid.New()
	ctx := context.Background()

	res, err := svc.Send(ctx, owner, &dto.MentorMessageRequest{Message: "How do I become a backend dev?"})
	require.NoError(t, err)
	assert.False(t, res.Unavailable)
	assert.Equal(t, "Start with HTTP and SQL.", res.Reply.Content)
	assert.Len(t, res.Messages, 2)

	sent := provider.last()
	require.Len(t, sent, 2)
	assert.Equal(t, llm.Message{Role: "system", Content: constant.MentorSystemPrompt}, sent[0])

	_, err = svc.Send(ctx, owner, &dto.MentorMessageRequest{Message: "And after that?"})
	require.NoError(t, err)
	assert.Len(t, provider.last(), 4, "system prompt plus full transcript")
	assert.Len(t, svc.History(owner), 4)

	svc.Reset(owner)
	assert.Empty(t, svc.History(owner))
}

func TestMentorService_Unavailable(t *testing.T) {
	provider := &fakeProvider{err: llm.ErrBackendUnavailable}
	svc := NewMentorService(provider, memory.NewChatTranscriptRepository(time.Hour, 40), nil, logger.NewNopLogger())
	owner := uuid.New()

	res, err := svc.Send(context.Background(), owner, &dto.MentorMessageRequest{Message: "hello"})
	require.NoError(t, err)
	assert.True(t, res.Unavailable)
	assert.Equal(t, constant.MentorUnavailable, res.Reply.Content)
	assert.Equal(t, "assistant", res.Reply.Role)

	provider.err = nil
	provider.reply = "   "
	res, err = svc.Send(context.Background(), owner, &dto.MentorMessageRequest{Message: "hello?"})
	require.NoError(t, err)
	assert.True(t, res.Unavailable, "blank reply counts as no reply")
}
