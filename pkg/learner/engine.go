package learner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"edumate-be/internal/pkg/logger"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/events"
	"edumate-be/pkg/kvstore"

	"github.com/google/uuid"
)

const module = "LearnerEngine"

const (
	TitleStreakContinued = "🔥 Streak Continued!"
	TitleRoadmapSet      = "🎯 Roadmap Set!"
)

// Publisher receives learner events after the state change is stored.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Options struct {
	// Location decides where a calendar day starts. Nil means UTC.
	Location             *time.Location
	DailyTaskLimit       int
	NotificationCapacity int
	TasksPerWeek         int
}

// Engine is the only component that reads or writes learner state keys.
// Mutations for one owner are serialized; every multi-key write goes to the
// store as one batch.
type Engine struct {
	store     kvstore.Store
	clock     clock.Clock
	sampler   Sampler
	publisher Publisher
	logger    logger.ILogger
	opts      Options

	locks sync.Map
}

func NewEngine(store kvstore.Store, clk clock.Clock, sampler Sampler, publisher Publisher, log logger.ILogger, opts Options) *Engine {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if sampler == nil {
		sampler = RandomSampler{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DailyTaskLimit <= 0 {
		opts.DailyTaskLimit = DefaultDailyLimit
	}
	if opts.NotificationCapacity <= 0 {
		opts.NotificationCapacity = DefaultNotifyCap
	}
	if opts.TasksPerWeek <= 0 {
		opts.TasksPerWeek = DefaultTasksPerWeek
	}
	return &Engine{
		store:     store,
		clock:     clk,
		sampler:   sampler,
		publisher: publisher,
		logger:    log,
		opts:      opts,
	}
}

func (e *Engine) lock(owner uuid.UUID) func() {
	m, _ := e.locks.LoadOrStore(owner, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Track returns the selected track, or "" when none is selected.
func (e *Engine) Track(ctx context.Context, owner uuid.UUID) (string, error) {
	v, _, err := e.store.Get(ctx, owner, kvstore.KeySelectedTrack)
	if err != nil {
		return "", fmt.Errorf("get track: %w", err)
	}
	return v, nil
}

// SelectTrack records the learner's track without touching the roadmap.
func (e *Engine) SelectTrack(ctx context.Context, owner uuid.UUID, track string) error {
	track = strings.TrimSpace(track)
	if track == "" {
		return ErrTrackRequired
	}
	defer e.lock(owner)()

	if err := e.store.Apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeySelectedTrack, track)); err != nil {
		return fmt.Errorf("select track: %w", err)
	}
	return nil
}

// Roadmap returns the normalized roadmap. When only a flat task list is
// stored, the roadmap is rebuilt from it and persisted.
func (e *Engine) Roadmap(ctx context.Context, owner uuid.UUID) ([]Week, error) {
	defer e.lock(owner)()

	batch := kvstore.NewBatch()
	weeks, err := e.loadRoadmap(ctx, owner, batch)
	if err != nil {
		return nil, err
	}
	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}
	return weeks, nil
}

// Tasks returns the flat task view of the roadmap.
func (e *Engine) Tasks(ctx context.Context, owner uuid.UUID) ([]Task, error) {
	weeks, err := e.Roadmap(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Flatten(weeks), nil
}

// AdoptRoadmap makes a generated roadmap the learner's goal. Track, roadmap
// and the derived task list are replaced, the streak ledger and the daily
// sample are cleared, and a notification is added, all in one batch.
func (e *Engine) AdoptRoadmap(ctx context.Context, owner uuid.UUID, in AdoptInput) (*AdoptResult, error) {
	track := strings.TrimSpace(in.Track)
	if track == "" {
		return nil, ErrTrackRequired
	}
	if len(in.Weeks) == 0 {
		return nil, ErrEmptyRoadmap
	}
	defer e.lock(owner)()

	now := e.clock.Now()
	weeks, flat := Materialize(in.Weeks)

	log, err := e.loadNotifications(ctx, owner)
	if err != nil {
		return nil, err
	}
	goal := strings.TrimSpace(in.Goal)
	if goal == "" {
		goal = track
	}
	note := log.Add(TitleRoadmapSet, fmt.Sprintf("Your new roadmap for %q is ready.", goal), now)

	batch := kvstore.NewBatch().
		Set(kvstore.KeySelectedTrack, track).
		Set(kvstore.KeyRoadmapData, mustJSON(weeks)).
		Set(kvstore.KeyUserTasks, mustJSON(flat)).
		Set(kvstore.KeyIsOnboarded, "true").
		Set(kvstore.KeyNotifications, mustJSON(log.Items())).
		Delete(kvstore.KeyStreakData, kvstore.KeyDailyTasks, kvstore.KeyDailyTasksDate, kvstore.KeyDailyTasksSourceHash)

	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}

	e.logger.Info(module, "Roadmap adopted", map[string]interface{}{
		"user_id": owner.String(),
		"track":   track,
		"weeks":   len(weeks),
		"tasks":   len(flat),
	})
	e.publish(ctx, events.ForUser(events.TypeRoadmapAdopted, owner, map[string]interface{}{
		"track": track,
		"goal":  goal,
		"weeks": len(weeks),
		"tasks": len(flat),
	}, now))
	e.publishNotification(ctx, owner, note)

	return &AdoptResult{Track: track, Weeks: weeks, Tasks: flat}, nil
}

// ToggleTask sets a task's completion in the roadmap and rewrites the flat
// task snapshot in the same batch.
func (e *Engine) ToggleTask(ctx context.Context, owner uuid.UUID, id string, completed bool) (*Task, error) {
	defer e.lock(owner)()

	batch := kvstore.NewBatch()
	weeks, err := e.loadRoadmap(ctx, owner, batch)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, ErrNoRoadmap
	}

	updated, task, ok := ToggleTask(weeks, id, completed)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	batch.Set(kvstore.KeyRoadmapData, mustJSON(updated)).
		Set(kvstore.KeyUserTasks, mustJSON(Flatten(updated)))

	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}

	e.publish(ctx, events.ForUser(events.TypeTaskToggled, owner, map[string]interface{}{
		"task_id":   task.ID,
		"completed": task.Completed,
	}, e.clock.Now()))
	return &task, nil
}

// DailyTasks returns today's sample. The cached sample is reused while the
// date and the roadmap fingerprint are unchanged; otherwise a new sample is
// drawn and stored. Completion is read from the roadmap. Counts describe the
// whole sample, Tasks is filtered.
func (e *Engine) DailyTasks(ctx context.Context, owner uuid.UUID, filter DailyFilter) (*DailySet, error) {
	defer e.lock(owner)()

	today := clock.Today(e.clock, e.opts.Location)
	batch := kvstore.NewBatch()
	weeks, err := e.loadRoadmap(ctx, owner, batch)
	if err != nil {
		return nil, err
	}

	set := &DailySet{Date: today, Tasks: []Task{}}
	if len(weeks) == 0 {
		if err := e.apply(ctx, owner, batch); err != nil {
			return nil, err
		}
		return set, nil
	}
	set.Fingerprint = Fingerprint(weeks)

	vals, err := e.store.GetMany(ctx, owner, kvstore.KeyDailyTasks, kvstore.KeyDailyTasksDate, kvstore.KeyDailyTasksSourceHash)
	if err != nil {
		return nil, fmt.Errorf("get daily tasks: %w", err)
	}

	var tasks []Task
	cached, hasCache := vals[kvstore.KeyDailyTasks]
	if hasCache && vals[kvstore.KeyDailyTasksDate] == today && vals[kvstore.KeyDailyTasksSourceHash] == set.Fingerprint {
		if err := json.Unmarshal([]byte(cached), &tasks); err != nil {
			e.logger.Warn(module, "Discarding unreadable daily tasks", map[string]interface{}{"user_id": owner.String(), "error": err})
			tasks = nil
			hasCache = false
		}
	} else {
		hasCache = false
	}

	if !hasCache {
		tasks = buildDailySet(e.sampler, Flatten(weeks), e.opts.DailyTaskLimit)
		batch.Set(kvstore.KeyDailyTasks, mustJSON(tasks)).
			Set(kvstore.KeyDailyTasksDate, today).
			Set(kvstore.KeyDailyTasksSourceHash, set.Fingerprint)
		set.Resampled = true
	}
	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}

	tasks = OverlayCompletion(tasks, weeks)
	for _, t := range tasks {
		if t.Completed {
			set.CompletedCount++
		}
	}
	set.TotalCount = len(tasks)
	set.Tasks = FilterTasks(tasks, filter)
	return set, nil
}

// CheckIn runs the once-per-session streak check and persists the visit.
func (e *Engine) CheckIn(ctx context.Context, owner uuid.UUID) (*StreakResult, error) {
	defer e.lock(owner)()

	now := e.clock.Now()
	today := clock.Today(e.clock, e.opts.Location)
	yesterday := clock.Yesterday(e.clock, e.opts.Location)

	vals, err := e.store.GetMany(ctx, owner, kvstore.KeyLastVisitDate, kvstore.KeyStreakData)
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	ledger := e.decodeLedger(owner, vals[kvstore.KeyStreakData])

	res := AdvanceStreak(ledger, vals[kvstore.KeyLastVisitDate], today, yesterday)
	if !res.Changed() {
		return &res, nil
	}

	batch := kvstore.NewBatch().
		Set(kvstore.KeyLastVisitDate, today).
		Set(kvstore.KeyStreakData, mustJSON(res.Ledger))

	var note *Notification
	if res.Status == StreakContinued {
		log, err := e.loadNotifications(ctx, owner)
		if err != nil {
			return nil, err
		}
		n := log.Add(TitleStreakContinued, fmt.Sprintf("You're on a %d-day streak. Keep going!", res.Streak), now)
		note = &n
		batch.Set(kvstore.KeyNotifications, mustJSON(log.Items()))
	}

	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}

	e.logger.Debug(module, "Streak checked", map[string]interface{}{
		"user_id": owner.String(),
		"status":  string(res.Status),
		"streak":  res.Streak,
	})
	if note != nil {
		e.publish(ctx, events.ForUser(events.TypeStreakContinued, owner, map[string]interface{}{"streak": res.Streak}, now))
		e.publishNotification(ctx, owner, *note)
	}
	return &res, nil
}

// Overview assembles the dashboard. It marks the learner as onboarded once a
// track and a non-empty roadmap exist.
func (e *Engine) Overview(ctx context.Context, owner uuid.UUID) (*Overview, error) {
	defer e.lock(owner)()

	batch := kvstore.NewBatch()
	weeks, err := e.loadRoadmap(ctx, owner, batch)
	if err != nil {
		return nil, err
	}
	vals, err := e.store.GetMany(ctx, owner, kvstore.KeySelectedTrack, kvstore.KeyIsOnboarded, kvstore.KeyStreakData)
	if err != nil {
		return nil, fmt.Errorf("get overview: %w", err)
	}

	tasks := Flatten(weeks)
	ov := &Overview{
		Track:     vals[kvstore.KeySelectedTrack],
		Streak:    len(e.decodeLedger(owner, vals[kvstore.KeyStreakData])),
		Onboarded: vals[kvstore.KeyIsOnboarded] == "true",
		Tasks:     tasks,
		Stats:     ComputeStats(tasks),
	}

	ready := ov.Track != "" && len(weeks) > 0
	if ready && !ov.Onboarded {
		batch.Set(kvstore.KeyIsOnboarded, "true")
		ov.Onboarded = true
	}
	ov.NeedsOnboarding = !ready && !ov.Onboarded

	if err := e.apply(ctx, owner, batch); err != nil {
		return nil, err
	}
	return ov, nil
}

// Notifications returns the log newest first.
func (e *Engine) Notifications(ctx context.Context, owner uuid.UUID) (*NotificationFeed, error) {
	log, err := e.loadNotifications(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{Items: log.Items(), HasUnread: log.HasUnread()}, nil
}

// AddNotification prepends a notification and publishes it.
func (e *Engine) AddNotification(ctx context.Context, owner uuid.UUID, title, message string) (*Notification, error) {
	defer e.lock(owner)()

	log, err := e.loadNotifications(ctx, owner)
	if err != nil {
		return nil, err
	}
	n := log.Add(title, message, e.clock.Now())
	if err := e.apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeyNotifications, mustJSON(log.Items()))); err != nil {
		return nil, err
	}
	e.publishNotification(ctx, owner, n)
	return &n, nil
}

// MarkAllAsRead returns the number of entries that were unread.
func (e *Engine) MarkAllAsRead(ctx context.Context, owner uuid.UUID) (int, error) {
	defer e.lock(owner)()

	log, err := e.loadNotifications(ctx, owner)
	if err != nil {
		return 0, err
	}
	changed := log.MarkAllRead()
	if changed == 0 {
		return 0, nil
	}
	if err := e.apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeyNotifications, mustJSON(log.Items()))); err != nil {
		return 0, err
	}
	return changed, nil
}

func (e *Engine) ActiveTab(ctx context.Context, owner uuid.UUID) (string, error) {
	v, _, err := e.store.Get(ctx, owner, kvstore.KeyActiveTab)
	if err != nil {
		return "", fmt.Errorf("get active tab: %w", err)
	}
	return v, nil
}

func (e *Engine) SetActiveTab(ctx context.Context, owner uuid.UUID, tab string) error {
	if err := e.store.Apply(ctx, owner, kvstore.NewBatch().Set(kvstore.KeyActiveTab, strings.TrimSpace(tab))); err != nil {
		return fmt.Errorf("set active tab: %w", err)
	}
	return nil
}

// loadRoadmap reads the roadmap, falling back to the stored flat task list
// and then to the stored daily tasks. A rebuilt roadmap is queued on batch.
func (e *Engine) loadRoadmap(ctx context.Context, owner uuid.UUID, batch *kvstore.Batch) ([]Week, error) {
	vals, err := e.store.GetMany(ctx, owner, kvstore.KeyRoadmapData, kvstore.KeyUserTasks, kvstore.KeyDailyTasks)
	if err != nil {
		return nil, fmt.Errorf("get roadmap: %w", err)
	}

	if raw, ok := vals[kvstore.KeyRoadmapData]; ok {
		var weeks []Week
		err := json.Unmarshal([]byte(raw), &weeks)
		if err == nil {
			return NormalizeWeeks(weeks), nil
		}
		e.logger.Warn(module, "Invalid roadmapData in store", map[string]interface{}{"user_id": owner.String(), "error": err})
	}

	var flat []Task
	if raw, ok := vals[kvstore.KeyUserTasks]; ok {
		if err := json.Unmarshal([]byte(raw), &flat); err != nil {
			e.logger.Warn(module, "Invalid userTasks in store", map[string]interface{}{"user_id": owner.String(), "error": err})
			flat = nil
		}
	}
	if len(flat) == 0 {
		if raw, ok := vals[kvstore.KeyDailyTasks]; ok {
			if err := json.Unmarshal([]byte(raw), &flat); err != nil {
				e.logger.Warn(module, "Invalid dailyTasks in store", map[string]interface{}{"user_id": owner.String(), "error": err})
				flat = nil
			}
			for i := range flat {
				if strings.TrimSpace(flat[i].ID) == "" {
					flat[i].ID = DailyTaskID(i)
				}
			}
		}
	}
	if len(flat) == 0 {
		return nil, nil
	}

	weeks := RebuildFromFlat(flat, e.opts.TasksPerWeek)
	batch.Set(kvstore.KeyRoadmapData, mustJSON(weeks)).
		Set(kvstore.KeyUserTasks, mustJSON(Flatten(weeks)))
	e.logger.Info(module, "Rebuilt roadmap from flat tasks", map[string]interface{}{
		"user_id": owner.String(),
		"weeks":   len(weeks),
	})
	return weeks, nil
}

func (e *Engine) loadNotifications(ctx context.Context, owner uuid.UUID) (*NotificationLog, error) {
	raw, found, err := e.store.Get(ctx, owner, kvstore.KeyNotifications)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	var items []Notification
	if found {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			e.logger.Warn(module, "Resetting invalid notifications", map[string]interface{}{"user_id": owner.String(), "error": err})
			items = nil
		}
	}
	return NewNotificationLog(items, e.opts.NotificationCapacity), nil
}

func (e *Engine) decodeLedger(owner uuid.UUID, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var ledger []string
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		e.logger.Warn(module, "Resetting invalid streak ledger", map[string]interface{}{"user_id": owner.String(), "error": err})
		return []string{}
	}
	return ledger
}

func (e *Engine) apply(ctx context.Context, owner uuid.UUID, batch *kvstore.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	if err := e.store.Apply(ctx, owner, batch); err != nil {
		return fmt.Errorf("persist learner state: %w", err)
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Error(module, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func (e *Engine) publishNotification(ctx context.Context, owner uuid.UUID, n Notification) {
	e.publish(ctx, events.ForUser(events.TypeNotificationCreated, owner, map[string]interface{}{
		"id":        n.ID,
		"title":     n.Title,
		"message":   n.Message,
		"timestamp": n.Timestamp.Format(time.RFC3339Nano),
		"read":      n.Read,
	}, n.Timestamp))
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("learner: encode state: %v", err))
	}
	return string(b)
}
