package roadmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"edumate-be/pkg/learner"
)

// ErrMalformedRoadmap is returned when a generated roadmap is not a list of
// weeks or a week carries no task list.
var ErrMalformedRoadmap = errors.New("malformed roadmap")

type wireTask struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Time        json.RawMessage `json:"time"`
	Difficulty  string          `json:"difficulty"`
	Completed   bool            `json:"completed"`
	Description string          `json:"description"`
}

type wireWeek struct {
	Week  *int        `json:"week"`
	Title string      `json:"title"`
	Tasks *[]wireTask `json:"tasks"`
}

// ParseWeeks decodes a week list. Numeric task times and missing week
// ordinals are accepted; ids and other defaults are left to the materializer.
func ParseWeeks(raw []byte) ([]learner.Week, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedRoadmap)
	}

	var wire []wireWeek
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoadmap, err)
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("%w: no weeks", ErrMalformedRoadmap)
	}

	weeks := make([]learner.Week, 0, len(wire))
	for i, w := range wire {
		if w.Tasks == nil {
			return nil, fmt.Errorf("%w: week %d has no tasks", ErrMalformedRoadmap, i+1)
		}
		number := i + 1
		if w.Week != nil && *w.Week > 0 {
			number = *w.Week
		}

		week := learner.Week{Week: number, Title: strings.TrimSpace(w.Title)}
		for _, t := range *w.Tasks {
			week.Tasks = append(week.Tasks, learner.Task{
				ID:          strings.TrimSpace(t.ID),
				Title:       strings.TrimSpace(t.Title),
				Category:    t.Category,
				Time:        parseTime(t.Time),
				Difficulty:  learner.Difficulty(strings.ToLower(t.Difficulty)),
				Completed:   t.Completed,
				Description: t.Description,
			})
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}

// ExtractArray cuts a chat reply down to the span between the first '[' and
// the last ']'. Code fences and surrounding prose are dropped.
func ExtractArray(reply string) (string, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON array in reply", ErrMalformedRoadmap)
	}
	return reply[start : end+1], nil
}

func parseTime(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f > 0 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
