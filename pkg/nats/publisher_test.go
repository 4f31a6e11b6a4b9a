package nats

import (
	"testing"
	"time"

	"edumate-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	e := events.ForUser(events.TypeRoadmapAdopted, uuid.New(), nil, time.Now())
	assert.Equal(t, "edumate.events.ROADMAP_ADOPTED", Subject(e))
}

func TestMsgID_StablePerEvent(t *testing.T) {
	owner := uuid.New()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	a := events.ForUser(events.TypeTaskToggled, owner, map[string]interface{}{"task_id": "x"}, at)
	b := events.ForUser(events.TypeTaskToggled, owner, map[string]interface{}{"task_id": "x"}, at)
	c := events.ForUser(events.TypeTaskToggled, owner, nil, at.Add(time.Nanosecond))

	assert.Equal(t, MsgID(a), MsgID(b))
	assert.NotEqual(t, MsgID(a), MsgID(c))
	assert.Contains(t, MsgID(a), owner.String())
}
