package service

import (
	"context"
	"strings"

	"edumate-be/internal/constant"
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/logger"
	"edumate-be/pkg/learner"
	"edumate-be/pkg/roadmap"

	"github.com/google/uuid"
)

type IRoadmapService interface {
	// Generate returns a draft roadmap. It never touches learner state, so a
	// late reply cannot overwrite anything.
	Generate(ctx context.Context, owner uuid.UUID, req *dto.GenerateRoadmapRequest) ([]learner.Week, error)
	Adopt(ctx context.Context, owner uuid.UUID, req *dto.AdoptRoadmapRequest) (*learner.AdoptResult, error)
}

type roadmapService struct {
	generator roadmap.Generator
	learner   ILearnerService
	logger    logger.ILogger
}

func NewRoadmapService(generator roadmap.Generator, learnerService ILearnerService, log logger.ILogger) IRoadmapService {
	return &roadmapService{
		generator: generator,
		learner:   learnerService,
		logger:    log,
	}
}

func (s *roadmapService) Generate(ctx context.Context, owner uuid.UUID, req *dto.GenerateRoadmapRequest) ([]learner.Week, error) {
	goal := strings.TrimSpace(req.Goal)

	raw, err := s.generator.Generate(ctx, goal)
	if err != nil {
		s.logger.Error("RoadmapService", "Roadmap generation failed", map[string]interface{}{
			"user_id": owner.String(),
			"goal":    goal,
			"error":   err,
		})
		return nil, err
	}

	weeks := learner.NormalizeWeeks(raw)
	s.logger.Info("RoadmapService", "Roadmap generated", map[string]interface{}{
		"user_id": owner.String(),
		"weeks":   len(weeks),
	})
	return weeks, nil
}

func (s *roadmapService) Adopt(ctx context.Context, owner uuid.UUID, req *dto.AdoptRoadmapRequest) (*learner.AdoptResult, error) {
	return s.learner.AdoptRoadmap(ctx, owner, learner.AdoptInput{
		Track: constant.TrackTitle(strings.TrimSpace(req.Track)),
		Goal:  req.Goal,
		Weeks: req.Weeks,
	})
}
