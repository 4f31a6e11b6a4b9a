package service

import (
	"context"
	"errors"
	"strings"

	"edumate-be/internal/constant"
	"edumate-be/internal/dto"
	"edumate-be/internal/entity"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/repository/memory"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/llm"

	"github.com/google/uuid"
)

type IMentorService interface {
	// Send appends the message to the transcript and asks the model for a
	// reply. A backend failure is not an error: the apology is stored as the
	// reply and Unavailable is set.
	Send(ctx context.Context, owner uuid.UUID, req *dto.MentorMessageRequest) (*dto.MentorReplyResponse, error)
	History(owner uuid.UUID) []dto.MentorMessage
	Reset(owner uuid.UUID)
}

type mentorService struct {
	provider    llm.LLMProvider
	transcripts *memory.ChatTranscriptRepository
	clock       clock.Clock
	logger      logger.ILogger
}

func NewMentorService(provider llm.LLMProvider, transcripts *memory.ChatTranscriptRepository, clk clock.Clock, log logger.ILogger) IMentorService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &mentorService{
		provider:    provider,
		transcripts: transcripts,
		clock:       clk,
		logger:      log,
	}
}

func (s *mentorService) Send(ctx context.Context, owner uuid.UUID, req *dto.MentorMessageRequest) (*dto.MentorReplyResponse, error) {
	userMsg := entity.ChatMessage{
		Role:      constant.ChatMessageRoleUser,
		Content:   strings.TrimSpace(req.Message),
		CreatedAt: s.clock.Now(),
	}

	history := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: constant.MentorSystemPrompt}}
	if t, ok := s.transcripts.Get(owner); ok {
		for _, m := range t.Messages {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		}
	}
	history = append(history, llm.Message{Role: userMsg.Role, Content: userMsg.Content})

	content, err := s.provider.Chat(ctx, history)
	if err == nil && strings.TrimSpace(content) == "" {
		err = errors.New("no reply received")
	}

	unavailable := false
	if err != nil {
		s.logger.Error("MentorService", "Mentor reply failed", map[string]interface{}{
			"user_id": owner.String(),
			"error":   err,
		})
		content = constant.MentorUnavailable
		unavailable = true
	}

	reply := entity.ChatMessage{
		Role:      constant.ChatMessageRoleAssistant,
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	transcript := s.transcripts.Append(owner, userMsg, reply)

	return &dto.MentorReplyResponse{
		Reply:       toMentorMessage(reply),
		Unavailable: unavailable,
		Messages:    toMentorMessages(transcript.Messages),
	}, nil
}

func (s *mentorService) History(owner uuid.UUID) []dto.MentorMessage {
	t, ok := s.transcripts.Get(owner)
	if !ok {
		return []dto.MentorMessage{}
	}
	return toMentorMessages(t.Messages)
}

func (s *mentorService) Reset(owner uuid.UUID) {
	s.transcripts.Delete(owner)
}

func toMentorMessage(m entity.ChatMessage) dto.MentorMessage {
	return dto.MentorMessage{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}

func toMentorMessages(msgs []entity.ChatMessage) []dto.MentorMessage {
	out := make([]dto.MentorMessage, len(msgs))
	for i, m := range msgs {
		out[i] = toMentorMessage(m)
	}
	return out
}
