package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edumate-be/internal/config"
	"edumate-be/internal/constant"
	"edumate-be/internal/controller"
	"edumate-be/internal/handler"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"
	"edumate-be/internal/websocket"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/kvstore"
	"edumate-be/pkg/learner"
	"edumate-be/pkg/llm/backend"
	"edumate-be/pkg/roadmap"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubGenerator struct {
	weeks []learner.Week
	err   error
}

func (g stubGenerator) Generate(context.Context, string) ([]learner.Week, error) {
	return g.weeks, g.err
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T, gen roadmap.Generator) *testServer {
	t.Helper()

	cfg := &config.Config{App: config.AppConfig{CorsAllowedOrigins: "http://localhost:5173"}}
	log := logger.NewNopLogger()

	first := func(pool []learner.Task, n int) []learner.Task {
		if n > len(pool) {
			n = len(pool)
		}
		return append([]learner.Task(nil), pool[:n]...)
	}
	engine := learner.NewEngine(
		kvstore.NewMemoryStore(),
		clock.Fixed{At: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		learner.SamplerFunc(first),
		nil,
		log,
		learner.Options{},
	)

	app := NewApp(cfg, log)
	Mount(app, serverutils.JwtMiddleware(testSecret),
		controller.NewLearnerController(engine),
		controller.NewRoadmapController(service.NewRoadmapService(gen, engine, log)),
		handler.NewNotificationHandler(engine, websocket.NewHub(nil, log), log),
	)

	token, err := serverutils.IssueToken(testSecret, uuid.New(), "learner@example.com", time.Hour)
	require.NoError(t, err)
	return &testServer{app: app, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func sampleWeeks() []learner.Week {
	return []learner.Week{
		{Week: 1, Title: "Foundations", Tasks: []learner.Task{
			{ID: "w1-a", Title: "HTTP basics"},
			{ID: "w1-b", Title: "Go syntax", Time: "60", Difficulty: learner.DifficultyEasy},
		}},
		{Week: 2, Title: "Services", Tasks: []learner.Task{
			{Title: "REST design"},
		}},
	}
}

func TestToggleKeepsRoadmapAndTasksInSync(t *testing.T) {
	s := newTestServer(t, stubGenerator{})

	code, env := s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "backend",
		"weeks": sampleWeeks(),
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var adopted learner.AdoptResult
	require.NoError(t, json.Unmarshal(env.Data, &adopted))
	assert.Equal(t, "Backend Development", adopted.Track)
	require.Len(t, adopted.Tasks, 3)

	code, env = s.do(t, http.MethodPatch, "/api/learner/tasks/w1-b", map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(t, http.MethodGet, "/api/learner/roadmap", nil)
	require.Equal(t, http.StatusOK, code)
	var weeks []learner.Week
	require.NoError(t, json.Unmarshal(env.Data, &weeks))

	code, env = s.do(t, http.MethodGet, "/api/learner/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	var tasks []learner.Task
	require.NoError(t, json.Unmarshal(env.Data, &tasks))

	nested := map[string]bool{}
	for _, w := range weeks {
		for _, task := range w.Tasks {
			nested[task.ID] = task.Completed
		}
	}
	require.Len(t, tasks, len(nested))
	for _, task := range tasks {
		completed, ok := nested[task.ID]
		require.True(t, ok, "task %s missing from roadmap", task.ID)
		assert.Equal(t, completed, task.Completed, "task %s", task.ID)
	}
	assert.True(t, nested["w1-b"])
	assert.False(t, nested["w1-a"])
}

func TestToggleUnknownTaskIsNotFound(t *testing.T) {
	s := newTestServer(t, stubGenerator{})

	code, _ := s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "Frontend Development",
		"weeks": sampleWeeks(),
	})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPatch, "/api/learner/tasks/nope", map[string]bool{"completed": true})
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestToggleWithoutRoadmapConflicts(t *testing.T) {
	s := newTestServer(t, stubGenerator{})

	code, _ := s.do(t, http.MethodPatch, "/api/learner/tasks/w1-a", map[string]bool{"completed": true})
	assert.Equal(t, http.StatusConflict, code)
}

func TestGenerateDoesNotPersist(t *testing.T) {
	s := newTestServer(t, stubGenerator{weeks: sampleWeeks()})

	code, env := s.do(t, http.MethodPost, "/api/roadmap/generate", map[string]string{"goal": "learn Go"})
	require.Equal(t, http.StatusOK, code, env.Message)

	var weeks []learner.Week
	require.NoError(t, json.Unmarshal(env.Data, &weeks))
	require.Len(t, weeks, 2)
	assert.Equal(t, "week-1-task-0", weeks[1].Tasks[0].ID)

	code, env = s.do(t, http.MethodGet, "/api/learner/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGoalToAdoptedRoadmapThroughBackend(t *testing.T) {
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/roadmap", r.URL.Path)
		var req struct {
			Goal string `json:"goal"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Learn backend in 2 months", req.Goal)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"week":1,"title":"HTTP","tasks":[
				{"title":"Verbs and status codes","time":45,"difficulty":"easy"},
				{"title":"Build a REST endpoint","time":"90"},
				{"title":"Handler tests","difficulty":"hard"}]},
			{"week":2,"title":"Databases","tasks":[
				{"title":"Model a schema"},
				{"title":"Add migrations"}]}]`))
	}))
	defer ai.Close()

	s := newTestServer(t, roadmap.NewBackendGenerator(backend.NewClient(ai.URL, time.Second)))

	// Prior state that adoption must replace.
	code, _ := s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "frontend",
		"weeks": sampleWeeks(),
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/learner/check-in", nil)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, "/api/roadmap/generate", map[string]string{"goal": "Learn backend in 2 months"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var weeks []learner.Week
	require.NoError(t, json.Unmarshal(env.Data, &weeks))
	require.Len(t, weeks, 2)

	code, env = s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "Backend Development",
		"goal":  "Learn backend in 2 months",
		"weeks": weeks,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(t, http.MethodGet, "/api/learner/overview", nil)
	require.Equal(t, http.StatusOK, code)
	var ov learner.Overview
	require.NoError(t, json.Unmarshal(env.Data, &ov))

	assert.Equal(t, "Backend Development", ov.Track)
	assert.Len(t, ov.Tasks, 5)
	assert.Equal(t, 0, ov.Streak)
	for _, task := range ov.Tasks {
		assert.NotContains(t, []string{"w1-a", "w1-b"}, task.ID)
		assert.False(t, task.Completed)
	}
}

func TestMalformedRoadmapMapsToGenericMessage(t *testing.T) {
	s := newTestServer(t, stubGenerator{err: roadmap.ErrMalformedRoadmap})

	code, env := s.do(t, http.MethodPost, "/api/roadmap/generate", map[string]string{"goal": "learn Go"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, constant.MsgRoadmapFailed, env.Message)
}

func TestDailyTasksAreCachedForTheDay(t *testing.T) {
	s := newTestServer(t, stubGenerator{})

	code, _ := s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "backend",
		"weeks": sampleWeeks(),
	})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/api/learner/daily-tasks", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var first learner.DailySet
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, "2026-03-10", first.Date)
	assert.Len(t, first.Tasks, 3)

	code, env = s.do(t, http.MethodGet, "/api/learner/daily-tasks", nil)
	require.Equal(t, http.StatusOK, code)
	var second learner.DailySet
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.False(t, second.Resampled)

	code, _ = s.do(t, http.MethodGet, "/api/learner/daily-tasks?difficulty=extreme", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdoptionLeavesUnreadNotification(t *testing.T) {
	s := newTestServer(t, stubGenerator{})

	code, _ := s.do(t, http.MethodPost, "/api/roadmap/adopt", map[string]interface{}{
		"track": "backend",
		"weeks": sampleWeeks(),
	})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/api/notifications/", nil)
	require.Equal(t, http.StatusOK, code)
	var feed learner.NotificationFeed
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.NotEmpty(t, feed.Items)
	assert.Equal(t, learner.TitleRoadmapSet, feed.Items[0].Title)
	assert.True(t, feed.HasUnread)

	code, _ = s.do(t, http.MethodPost, "/api/notifications/read", nil)
	require.Equal(t, http.StatusOK, code)

	_, env = s.do(t, http.MethodGet, "/api/notifications/", nil)
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	assert.False(t, feed.HasUnread)
}

func TestMissingTokenIsRejected(t *testing.T) {
	s := newTestServer(t, stubGenerator{})
	s.token = ""

	code, env := s.do(t, http.MethodGet, "/api/learner/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestTrackCatalogIsPublic(t *testing.T) {
	s := newTestServer(t, stubGenerator{})
	s.token = ""

	code, env := s.do(t, http.MethodGet, "/api/tracks", nil)
	require.Equal(t, http.StatusOK, code)
	var tracks []constant.Track
	require.NoError(t, json.Unmarshal(env.Data, &tracks))
	assert.Len(t, tracks, len(constant.Tracks))
}
