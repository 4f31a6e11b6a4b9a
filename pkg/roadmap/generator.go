// Package roadmap turns a learning goal into a week list, either through the
// AI backend's roadmap endpoint or by prompting a chat model.
package roadmap

import (
	"context"
	"fmt"
	"strings"

	"edumate-be/pkg/learner"
	"edumate-be/pkg/llm"
)

const promptTemplate = `Generate a week-wise learning roadmap in JSON format:
[
  {
    "week": 1,
    "title": "Module Title",
    "tasks": [
      { "id": "task-1", "title": "Learn topic 1", "completed": false }
    ]
  }
]
Strict JSON only. The goal is: %s`

// Generator produces an unpersisted roadmap for a goal.
type Generator interface {
	Generate(ctx context.Context, goal string) ([]learner.Week, error)
}

// RoadmapClient is the part of the AI backend client the backend generator
// needs.
type RoadmapClient interface {
	GenerateRoadmap(ctx context.Context, goal string) ([]byte, error)
}

type BackendGenerator struct {
	client RoadmapClient
}

func NewBackendGenerator(client RoadmapClient) *BackendGenerator {
	return &BackendGenerator{client: client}
}

func (g *BackendGenerator) Generate(ctx context.Context, goal string) ([]learner.Week, error) {
	raw, err := g.client.GenerateRoadmap(ctx, goal)
	if err != nil {
		return nil, err
	}
	return ParseWeeks(raw)
}

type PromptGenerator struct {
	provider llm.LLMProvider
	opts     []llm.Option
}

func NewPromptGenerator(provider llm.LLMProvider, opts ...llm.Option) *PromptGenerator {
	return &PromptGenerator{provider: provider, opts: opts}
}

func (g *PromptGenerator) Generate(ctx context.Context, goal string) ([]learner.Week, error) {
	reply, err := g.provider.Generate(ctx, BuildPrompt(goal), g.opts...)
	if err != nil {
		return nil, err
	}
	body, err := ExtractArray(reply)
	if err != nil {
		return nil, err
	}
	return ParseWeeks([]byte(body))
}

func BuildPrompt(goal string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(goal))
}
