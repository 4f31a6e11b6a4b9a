package learner

// ToggleTask sets the completion of the task with the given id and returns
// the updated copy of weeks along with the task. Tasks are matched by id
// first; a task stored without an id answers to its positional id
// (zero based week index). Tasks with their own id never match positionally.
func ToggleTask(weeks []Week, id string, completed bool) ([]Week, Task, bool) {
	wi, ti, ok := locateTask(weeks, id)
	if !ok {
		return weeks, Task{}, false
	}

	out := make([]Week, len(weeks))
	for i, w := range weeks {
		out[i] = w
		out[i].Tasks = append([]Task(nil), w.Tasks...)
	}
	out[wi].Tasks[ti].Completed = completed
	out[wi].Completed = weekCompleted(out[wi].Tasks)
	return out, out[wi].Tasks[ti], true
}

func locateTask(weeks []Week, id string) (int, int, bool) {
	if id == "" {
		return 0, 0, false
	}
	for wi, w := range weeks {
		for ti, t := range w.Tasks {
			if t.ID == id {
				return wi, ti, true
			}
		}
	}
	for wi, w := range weeks {
		for ti, t := range w.Tasks {
			if t.ID == "" && WeekTaskID(wi, ti) == id {
				return wi, ti, true
			}
		}
	}
	return 0, 0, false
}

// OverlayCompletion copies completion state from the roadmap onto tasks that
// share an id with it. Tasks unknown to the roadmap are left alone.
func OverlayCompletion(tasks []Task, weeks []Week) []Task {
	state := make(map[string]bool)
	for _, t := range Flatten(weeks) {
		state[t.ID] = t.Completed
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if done, ok := state[t.ID]; ok {
			t.Completed = done
		}
		out[i] = t
	}
	return out
}
