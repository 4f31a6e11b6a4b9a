package learner

import (
	"strconv"
	"time"
)

// NotificationLog is a newest-first ring of notifications. Once capacity is
// reached the oldest entry is evicted on every add.
type NotificationLog struct {
	items    []Notification
	capacity int
}

func NewNotificationLog(items []Notification, capacity int) *NotificationLog {
	if capacity <= 0 {
		capacity = DefaultNotifyCap
	}
	l := &NotificationLog{capacity: capacity}
	l.items = append(l.items, items...)
	l.trim()
	return l
}

// Add prepends an unread notification stamped with now.
func (l *NotificationLog) Add(title, message string, now time.Time) Notification {
	n := Notification{
		ID:        l.nextID(now),
		Title:     title,
		Message:   message,
		Timestamp: now.UTC(),
		Read:      false,
	}
	l.items = append([]Notification{n}, l.items...)
	l.trim()
	return n
}

// MarkAllRead flips every entry to read and returns how many changed.
func (l *NotificationLog) MarkAllRead() int {
	changed := 0
	for i := range l.items {
		if !l.items[i].Read {
			l.items[i].Read = true
			changed++
		}
	}
	return changed
}

func (l *NotificationLog) HasUnread() bool {
	for _, n := range l.items {
		if !n.Read {
			return true
		}
	}
	return false
}

func (l *NotificationLog) Items() []Notification {
	return append([]Notification{}, l.items...)
}

func (l *NotificationLog) Len() int {
	return len(l.items)
}

// nextID derives the id from the millisecond timestamp and suffixes it when
// two notifications land in the same millisecond.
func (l *NotificationLog) nextID(now time.Time) string {
	base := strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for n := 1; l.has(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func (l *NotificationLog) has(id string) bool {
	for _, n := range l.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (l *NotificationLog) trim() {
	if len(l.items) > l.capacity {
		l.items = l.items[:l.capacity]
	}
}
