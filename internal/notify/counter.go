// Package notify tracks unread notification counters and listens for
// push notifications on the platform hub.
package notify

import "github.com/staykit/staykit-go/internal/domain"

// Counter identifies one badge counter in the UI.
type Counter string

// The counters shown to the user. Both activity notification
// categories feed the single Activity counter: the platform raises a
// group event and a category event for the same underlying activity,
// and the badge has always shown the sum of both streams. Splitting
// them (or de-duplicating the pair) would change badge numbers users
// are accustomed to, so the fold is kept as-is.
const (
	CounterBooking  Counter = "booking"
	CounterChat     Counter = "chat"
	CounterActivity Counter = "activity"
	CounterSystem   Counter = "system"
)

// counterFor maps a platform notification category to its counter.
// Unknown categories fall through to the system counter so a new
// platform category never gets silently dropped.
func counterFor(category string) Counter {
	switch category {
	case domain.NotifyBooking:
		return CounterBooking
	case domain.NotifyChatMessage:
		return CounterChat
	case domain.NotifyActivityGroup, domain.NotifyActivityCategory:
		return CounterActivity
	default:
		return CounterSystem
	}
}

// EventKind says whether a notification arrived or was read.
type EventKind int

// Event kinds.
const (
	EventReceived EventKind = iota
	EventRead
)

// Event is one change to the unread state.
type Event struct {
	Kind           EventKind
	Category       string
	NotificationID int64
}

// State holds the unread count per counter. The zero value is an
// empty state; all counters read as zero.
type State map[Counter]int

// Count returns the unread count for a counter.
func (s State) Count(c Counter) int { return s[c] }

// Total returns the sum across all counters.
func (s State) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Reduce applies an event and returns the next state. The input state
// is never mutated, so callers can hold onto snapshots safely. A read
// event on an already-empty counter is a no-op rather than an error:
// reads can race ahead of the received events that back them.
func Reduce(s State, e Event) State {
	next := make(State, len(s)+1)
	for k, v := range s {
		next[k] = v
	}

	counter := counterFor(e.Category)
	switch e.Kind {
	case EventReceived:
		next[counter]++
	case EventRead:
		if next[counter] > 0 {
			next[counter]--
		}
	}
	return next
}
