// Package backend talks to the EduMate AI backend, which serves roadmap
// generation on /api/roadmap and chat completions on /api/analyze.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edumate-be/pkg/llm"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

var _ llm.LLMProvider = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Messages []llm.Message `json:"messages"`
}

type analyzeResponse struct {
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
}

type roadmapRequest struct {
	Goal string `json:"goal"`
}

// Chat posts the history to /api/analyze and returns choices[0].message.
func (c *Client) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	body, err := c.post(ctx, "/api/analyze", analyzeRequest{Messages: history})
	if err != nil {
		return "", err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode analyze response: %v", llm.ErrBackendUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", llm.ErrBackendUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// GenerateRoadmap posts the goal to /api/roadmap and returns the raw body.
// The body is expected to be a week list; parsing is left to the caller.
func (c *Client) GenerateRoadmap(ctx context.Context, goal string) ([]byte, error) {
	return c.post(ctx, "/api/roadmap", roadmapRequest{Goal: goal})
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", llm.ErrBackendUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", llm.ErrBackendUnavailable, path, resp.StatusCode)
	}
	return body, nil
}
