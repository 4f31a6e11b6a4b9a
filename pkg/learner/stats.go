package learner

import (
	"math"
	"strconv"
	"strings"
)

// ComputeStats summarizes a flat task list. Unparsable times count as zero.
func ComputeStats(tasks []Task) Stats {
	s := Stats{TotalTasks: len(tasks)}
	minutes := 0
	for _, t := range tasks {
		if t.Completed {
			s.CompletedTasks++
		}
		if m, err := strconv.Atoi(strings.TrimSpace(t.Time)); err == nil {
			minutes += m
		}
	}
	s.TotalHours = float64(minutes) / 60
	if s.TotalTasks > 0 {
		s.CompletionPercent = int(math.Round(float64(s.CompletedTasks) / float64(s.TotalTasks) * 100))
	}
	return s
}

// FilterTasks applies a case-insensitive substring match on title or
// category, and an exact difficulty match unless Difficulty is "" or "all".
func FilterTasks(tasks []Task, f DailyFilter) []Task {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	diff := strings.ToLower(strings.TrimSpace(f.Difficulty))

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			continue
		}
		if diff != "" && diff != "all" && string(t.Difficulty) != diff {
			continue
		}
		out = append(out, t)
	}
	return out
}
