package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staykit/staykit-go/internal/domain"
)

func TestReduce_ReceivedIncrementsCounter(t *testing.T) {
	s := Reduce(State{}, Event{Kind: EventReceived, Category: domain.NotifyBooking})

	assert.Equal(t, 1, s.Count(CounterBooking))
	assert.Equal(t, 1, s.Total())
}

func TestReduce_BothActivityCategoriesFeedOneCounter(t *testing.T) {
	s := State{}
	s = Reduce(s, Event{Kind: EventReceived, Category: domain.NotifyActivityGroup})
	s = Reduce(s, Event{Kind: EventReceived, Category: domain.NotifyActivityCategory})

	assert.Equal(t, 2, s.Count(CounterActivity))
	assert.Equal(t, 2, s.Total())
	assert.Zero(t, s.Count(CounterBooking))
}

func TestReduce_UnknownCategoryLandsOnSystem(t *testing.T) {
	s := Reduce(State{}, Event{Kind: EventReceived, Category: "something-new"})
	assert.Equal(t, 1, s.Count(CounterSystem))
}

func TestReduce_ReadDecrementsAndFloorsAtZero(t *testing.T) {
	s := State{CounterChat: 1}
	s = Reduce(s, Event{Kind: EventRead, Category: domain.NotifyChatMessage})
	assert.Zero(t, s.Count(CounterChat))

	// A read racing ahead of its received event must not go negative.
	s = Reduce(s, Event{Kind: EventRead, Category: domain.NotifyChatMessage})
	assert.Zero(t, s.Count(CounterChat))
	assert.Zero(t, s.Total())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := State{CounterBooking: 2}
	next := Reduce(original, Event{Kind: EventReceived, Category: domain.NotifyBooking})

	assert.Equal(t, 2, original.Count(CounterBooking))
	assert.Equal(t, 3, next.Count(CounterBooking))
}

func TestState_TotalSumsAllCounters(t *testing.T) {
	s := State{CounterBooking: 2, CounterChat: 1, CounterActivity: 4}
	assert.Equal(t, 7, s.Total())
	assert.Zero(t, State{}.Total())
}
