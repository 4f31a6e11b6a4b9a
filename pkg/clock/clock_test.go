package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFixed_TodayAndYesterday(t *testing.T) {
	c := Fixed{At: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2024-03-01", Today(c, nil))
	assert.Equal(t, "2024-02-29", Yesterday(c, nil))
}

func TestToday_UsesLocation(t *testing.T) {
	// 23:30 UTC is already the next day in Jakarta (UTC+7).
	c := Fixed{At: time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)}
	jakarta := time.FixedZone("WIB", 7*60*60)

	assert.Equal(t, "2024-06-15", Today(c, time.UTC))
	assert.Equal(t, "2024-06-16", Today(c, jakarta))
	assert.Equal(t, "2024-06-15", Yesterday(c, jakarta))
}
