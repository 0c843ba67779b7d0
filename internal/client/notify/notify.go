// Package notify queues short-lived user notifications. Entries expire on
// their own after a TTL; the REPL drains the rest before each prompt.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/logging"
)

type Level string

const (
	Success Level = "success"
	Danger  Level = "danger"
	Warning Level = "warning"
	Info    Level = "info"
)

// Icon is the marker printed in front of a message.
func (l Level) Icon() string {
	switch l {
	case Success:
		return "✔"
	case Danger:
		return "✖"
	case Warning:
		return "!"
	default:
		return "i"
	}
}

const DefaultTTL = 3 * time.Second

type Notification struct {
	ID      uint64
	Level   Level
	Message string
	At      time.Time
}

type Queue struct {
	mu     sync.Mutex
	items  []Notification
	nextID uint64
	ttl    time.Duration
	now    func() time.Time
	log    logging.Logger
}

func NewQueue(ttl time.Duration, log logging.Logger) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Queue{ttl: ttl, now: time.Now, log: log.With("component", "notify")}
}

// Push appends a notification and returns it.
func (q *Queue) Push(ctx context.Context, level Level, msg string) Notification {
	q.mu.Lock()
	q.nextID++
	n := Notification{ID: q.nextID, Level: level, Message: msg, At: q.now()}
	q.items = append(q.items, n)
	q.mu.Unlock()

	switch level {
	case Danger:
		q.log.Error(ctx, msg)
	case Warning:
		q.log.Warn(ctx, msg)
	default:
		q.log.Debug(ctx, msg, "level", string(level))
	}
	return n
}

// Drain returns the live notifications, oldest first, and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.expire()
	out := q.items
	q.items = nil
	return out
}

// expire must be called with mu held.
func (q *Queue) expire() {
	cutoff := q.now().Add(-q.ttl)
	i := 0
	for i < len(q.items) && !q.items[i].At.After(cutoff) {
		i++
	}
	q.items = q.items[i:]
}
