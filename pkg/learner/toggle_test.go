package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleTask_FlatAndNestedAgree(t *testing.T) {
	weeks, _ := Materialize(roadmapWithoutIDs(3, 3))

	for _, task := range Flatten(weeks) {
		updated, got, ok := ToggleTask(weeks, task.ID, true)
		require.True(t, ok, task.ID)
		assert.True(t, got.Completed)

		nested := map[string]bool{}
		for _, w := range updated {
			for _, nt := range w.Tasks {
				nested[nt.ID] = nt.Completed
			}
		}
		for _, ft := range Flatten(updated) {
			assert.Equal(t, nested[ft.ID], ft.Completed, ft.ID)
		}
		assert.True(t, nested[task.ID])
		weeks = updated
	}

	for _, w := range weeks {
		assert.True(t, w.Completed)
	}
}

func TestToggleTask_DoesNotMutateInput(t *testing.T) {
	weeks, _ := Materialize(roadmapWithoutIDs(1, 2))

	_, _, ok := ToggleTask(weeks, "week-0-task-1", true)

	require.True(t, ok)
	assert.False(t, weeks[0].Tasks[1].Completed)
}

func TestToggleTask_PositionalIDOnlyForTasksWithoutID(t *testing.T) {
	weeks, _ := Materialize([]Week{
		{Week: 1, Title: "W1", Tasks: []Task{{ID: "w1-a"}, {ID: "w1-b"}}},
		{Week: 2, Title: "W2", Tasks: []Task{{ID: "w2-a"}}},
	})

	for _, id := range []string{"week-0-task-0", "week-1-task-0", "week-0-task-1"} {
		_, _, ok := ToggleTask(weeks, id, true)
		assert.False(t, ok, id)
	}

	raw := []Week{{Week: 1, Title: "W", Tasks: []Task{{ID: "custom-a"}, {Title: "no id"}}}}
	_, got, ok := ToggleTask(raw, "week-0-task-1", true)
	require.True(t, ok)
	assert.Equal(t, "no id", got.Title)

	_, _, ok = ToggleTask(raw, "week-1-task-1", true)
	assert.False(t, ok, "week number is not a positional key")
}

func TestToggleTask_Unknown(t *testing.T) {
	weeks, _ := Materialize(roadmapWithoutIDs(1, 1))

	_, _, ok := ToggleTask(weeks, "nope", true)
	assert.False(t, ok)

	_, _, ok = ToggleTask(weeks, "", true)
	assert.False(t, ok)
}

func TestOverlayCompletion(t *testing.T) {
	weeks := []Week{{Tasks: []Task{{ID: "a", Completed: true}, {ID: "b"}}}}
	tasks := []Task{{ID: "a"}, {ID: "b", Completed: true}, {ID: "z", Completed: true}}

	got := OverlayCompletion(tasks, weeks)

	assert.True(t, got[0].Completed)
	assert.False(t, got[1].Completed)
	assert.True(t, got[2].Completed, "unknown ids keep their own state")
}
