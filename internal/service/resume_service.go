package service

import (
	"context"
	"fmt"
	"strings"

	"edumate-be/internal/constant"
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/logger"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/events"
	"edumate-be/pkg/llm"
	"edumate-be/pkg/resume"

	"github.com/google/uuid"
)

type IResumeService interface {
	Analyze(ctx context.Context, owner uuid.UUID, filename string, data []byte) (*dto.ResumeAnalysisResponse, error)
	AnalyzeSample(ctx context.Context, owner uuid.UUID) (*dto.ResumeAnalysisResponse, error)
}

type resumeService struct {
	provider       llm.LLMProvider
	notifier       Notifier
	eventPublisher EventPublisher
	clock          clock.Clock
	logger         logger.ILogger
}

func NewResumeService(provider llm.LLMProvider, notifier Notifier, eventPublisher EventPublisher, clk clock.Clock, log logger.ILogger) IResumeService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &resumeService{
		provider:       provider,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		clock:          clk,
		logger:         log,
	}
}

func (s *resumeService) Analyze(ctx context.Context, owner uuid.UUID, filename string, data []byte) (*dto.ResumeAnalysisResponse, error) {
	doc, err := resume.Extract(filename, data)
	if err != nil {
		s.logger.Warn("ResumeService", "Resume extraction failed", map[string]interface{}{
			"user_id":  owner.String(),
			"filename": filename,
			"error":    err,
		})
		s.notify(ctx, owner, constant.NotifyAnalyzeErrorTitle, constant.NotifyAnalyzeErrorMessage)
		return nil, err
	}
	return s.review(ctx, owner, doc)
}

func (s *resumeService) AnalyzeSample(ctx context.Context, owner uuid.UUID) (*dto.ResumeAnalysisResponse, error) {
	s.notify(ctx, owner, constant.NotifySampleLoadedTitle, constant.NotifySampleLoadedMessage)
	return s.review(ctx, owner, &resume.Document{
		Filename: "sample-resume.txt",
		MimeType: resume.MimeText,
		Text:     constant.SampleResumeText,
	})
}

func (s *resumeService) review(ctx context.Context, owner uuid.UUID, doc *resume.Document) (*dto.ResumeAnalysisResponse, error) {
	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.ResumeReviewerPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.ResumeReviewTemplate, doc.Text)},
	}

	feedback, err := s.provider.Chat(ctx, messages)
	if err == nil && strings.TrimSpace(feedback) == "" {
		err = fmt.Errorf("%w: empty AI response", llm.ErrBackendUnavailable)
	}
	if err != nil {
		s.logger.Error("ResumeService", "Resume review failed", map[string]interface{}{
			"user_id": owner.String(),
			"error":   err,
		})
		s.notify(ctx, owner, constant.NotifyAIErrorTitle, constant.NotifyAIErrorMessage)
		return nil, err
	}

	s.notify(ctx, owner, constant.NotifyResumeAnalyzedTitle, constant.NotifyResumeAnalyzedMessage)
	if s.eventPublisher != nil {
		event := events.ForUser(events.TypeResumeAnalyzed, owner, map[string]interface{}{
			"filename":  doc.Filename,
			"mime_type": doc.MimeType,
			"chars":     len(doc.Text),
		}, s.clock.Now())
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ResumeService", "Failed to publish event", map[string]interface{}{"error": err})
		}
	}

	return &dto.ResumeAnalysisResponse{
		Filename: doc.Filename,
		MimeType: doc.MimeType,
		Feedback: feedback,
	}, nil
}

func (s *resumeService) notify(ctx context.Context, owner uuid.UUID, title, message string) {
	if _, err := s.notifier.AddNotification(ctx, owner, title, message); err != nil {
		s.logger.Warn("ResumeService", "Failed to add notification", map[string]interface{}{
			"user_id": owner.String(),
			"title":   title,
			"error":   err,
		})
	}
}
