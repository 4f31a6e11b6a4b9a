package learner

import (
	"fmt"
	"strings"
)

// WeekTaskID is the positional id given to a roadmap task that arrived
// without one.
func WeekTaskID(weekIndex, taskIndex int) string {
	return fmt.Sprintf("week-%d-task-%d", weekIndex, taskIndex)
}

// DailyTaskID is the positional id given to a daily task without one.
func DailyTaskID(index int) string {
	return fmt.Sprintf("daily-%d", index)
}

// Materialize normalizes weeks and returns them together with the flat task
// view. The input is not modified. Materializing the same source twice
// yields identical ids.
func Materialize(weeks []Week) ([]Week, []Task) {
	normalized := NormalizeWeeks(weeks)
	return normalized, Flatten(normalized)
}

// NormalizeWeeks returns a deep copy of weeks with every default applied:
// week numbers and titles, task ids (week-{weekIndex}-task-{taskIndex},
// zero based), time, difficulty and category. Duplicate ids are replaced
// with the positional id so every id is unique within the roadmap. Week
// completion is derived from its tasks.
func NormalizeWeeks(weeks []Week) []Week {
	out := make([]Week, len(weeks))
	seen := make(map[string]struct{})

	for wi, w := range weeks {
		nw := Week{Week: w.Week, Title: strings.TrimSpace(w.Title)}
		if nw.Week <= 0 {
			nw.Week = wi + 1
		}
		if nw.Title == "" {
			nw.Title = fmt.Sprintf("Week %d", nw.Week)
		}

		nw.Tasks = make([]Task, len(w.Tasks))
		for ti, t := range w.Tasks {
			t.ID = strings.TrimSpace(t.ID)
			if _, dup := seen[t.ID]; t.ID == "" || dup {
				t.ID = uniqueID(WeekTaskID(wi, ti), seen)
			}
			seen[t.ID] = struct{}{}
			nw.Tasks[ti] = normalizeTask(t, nw.Title)
		}
		nw.Completed = weekCompleted(nw.Tasks)
		out[wi] = nw
	}
	return out
}

// RebuildFromFlat groups a flat task list into weeks of perWeek tasks. Weeks
// are numbered from 1 and titled "Week N"; missing ids become
// week-{N}-task-{idx}.
func RebuildFromFlat(tasks []Task, perWeek int) []Week {
	if perWeek <= 0 {
		perWeek = DefaultTasksPerWeek
	}
	var weeks []Week
	seen := make(map[string]struct{})

	for start := 0; start < len(tasks); start += perWeek {
		end := min(start+perWeek, len(tasks))
		num := start/perWeek + 1
		w := Week{Week: num, Title: fmt.Sprintf("Week %d", num)}

		for idx, t := range tasks[start:end] {
			t.ID = strings.TrimSpace(t.ID)
			if _, dup := seen[t.ID]; t.ID == "" || dup {
				t.ID = uniqueID(WeekTaskID(num, idx), seen)
			}
			seen[t.ID] = struct{}{}
			w.Tasks = append(w.Tasks, normalizeTask(t, w.Title))
		}
		w.Completed = weekCompleted(w.Tasks)
		weeks = append(weeks, w)
	}
	return weeks
}

// Flatten returns every task of every week in order.
func Flatten(weeks []Week) []Task {
	var n int
	for _, w := range weeks {
		n += len(w.Tasks)
	}
	flat := make([]Task, 0, n)
	for _, w := range weeks {
		flat = append(flat, w.Tasks...)
	}
	return flat
}

func normalizeTask(t Task, weekTitle string) Task {
	t.Title = strings.TrimSpace(t.Title)
	if strings.TrimSpace(t.Category) == "" {
		t.Category = weekTitle
	}
	if strings.TrimSpace(t.Time) == "" {
		t.Time = DefaultTaskTime
	}
	t.Difficulty = Difficulty(strings.ToLower(string(t.Difficulty)))
	if !t.Difficulty.Valid() {
		t.Difficulty = DifficultyMedium
	}
	return t
}

func uniqueID(base string, seen map[string]struct{}) string {
	if _, taken := seen[base]; !taken {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
	}
}

func weekCompleted(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}
