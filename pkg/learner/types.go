// Package learner reconciles the persisted learner state: the adopted
// roadmap, the flat task view derived from it, the daily task sample, the
// visit streak and the notification log.
package learner

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	DefaultTaskTime     = "30"
	DefaultTasksPerWeek = 5
	DefaultDailyLimit   = 4
	DefaultNotifyCap    = 50
)

// Task is a single unit of work. Time is minutes, string encoded.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Time        string     `json:"time"`
	Difficulty  Difficulty `json:"difficulty"`
	Completed   bool       `json:"completed"`
	Description string     `json:"description,omitempty"`
}

type Week struct {
	Week      int    `json:"week"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Tasks     []Task `json:"tasks"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type Stats struct {
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	TotalHours        float64 `json:"total_hours"`
	CompletionPercent int     `json:"completion_percent"`
}

// DailySet is the sample of tasks shown for one calendar day.
type DailySet struct {
	Date           string `json:"date"`
	Fingerprint    string `json:"fingerprint"`
	Tasks          []Task `json:"tasks"`
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
	Resampled      bool   `json:"resampled"`
}

// DailyFilter narrows a DailySet for display. Empty fields match everything.
type DailyFilter struct {
	Query      string
	Difficulty string
}

type Overview struct {
	Track           string `json:"track"`
	Streak          int    `json:"streak"`
	Onboarded       bool   `json:"onboarded"`
	NeedsOnboarding bool   `json:"needs_onboarding"`
	Tasks           []Task `json:"tasks"`
	Stats           Stats  `json:"stats"`
}

type NotificationFeed struct {
	Items     []Notification `json:"items"`
	HasUnread bool           `json:"has_unread"`
}

// AdoptInput is a generated roadmap the learner chose as their goal.
type AdoptInput struct {
	Track string
	Goal  string
	Weeks []Week
}

type AdoptResult struct {
	Track string `json:"track"`
	Weeks []Week `json:"weeks"`
	Tasks []Task `json:"tasks"`
}
