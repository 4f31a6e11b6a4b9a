package roadmap

import (
	"testing"

	"edumate-be/pkg/learner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeeks(t *testing.T) {
	raw := []byte(`[
		{"week": 1, "title": "Foundations", "tasks": [
			{"id": "t1", "title": "HTTP basics", "time": 45, "difficulty": "EASY"},
			{"title": "Go syntax", "time": "60"}
		]},
		{"title": "Databases", "tasks": []}
	]`)

	weeks, err := ParseWeeks(raw)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	assert.Equal(t, 1, weeks[0].Week)
	assert.Equal(t, "45", weeks[0].Tasks[0].Time)
	assert.Equal(t, learner.DifficultyEasy, weeks[0].Tasks[0].Difficulty)
	assert.Equal(t, "60", weeks[0].Tasks[1].Time)
	assert.Empty(t, weeks[0].Tasks[1].ID)

	assert.Equal(t, 2, weeks[1].Week, "missing ordinal falls back to position")
	assert.Empty(t, weeks[1].Tasks)
}

func TestParseWeeks_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object", `{"weeks": []}`},
		{"empty", ``},
		{"empty array", `[]`},
		{"missing tasks", `[{"week": 1, "title": "x"}]`},
		{"broken json", `[{"week": 1,`},
		{"tasks not a list", `[{"week": 1, "tasks": "none"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeeks([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrMalformedRoadmap)
		})
	}
}

func TestExtractArray(t *testing.T) {
	out, err := ExtractArray("Sure! ```json\n[{\"week\":1,\"tasks\":[]}]\n``` Good luck.")
	require.NoError(t, err)
	assert.Equal(t, `[{"week":1,"tasks":[]}]`, out)

	_, err = ExtractArray("I cannot help with that.")
	assert.ErrorIs(t, err, ErrMalformedRoadmap)
}
