package notify

import (
	"context"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// countQuery selects one category on the notification count endpoint.
type countQuery struct {
	Category string `url:"category"`
}

// platformCategories are fetched one by one when seeding the state.
// Both activity categories are queried; their results land on the
// same counter, see counterFor.
var platformCategories = []string{
	domain.NotifyBooking,
	domain.NotifyChatMessage,
	domain.NotifyActivityGroup,
	domain.NotifyActivityCategory,
	domain.NotifySystem,
}

// FetchCounts seeds a fresh State from the platform unread counts.
// One count call is made per category, sequentially; the first failed
// call aborts the fetch and its error is returned.
func FetchCounts(ctx context.Context, p *rest.Provider) (State, error) {
	state := State{}
	for _, category := range platformCategories {
		res := rest.GetWith[int64](ctx, p, "notifications/count", countQuery{Category: category})
		if err := res.Err(); err != nil {
			return nil, err
		}
		state[counterFor(category)] += int(res.Data)
	}
	return state, nil
}

// FetchList retrieves the unread notifications for display.
func FetchList(ctx context.Context, p *rest.Provider) rest.Result[[]domain.Notification] {
	return rest.Get[[]domain.Notification](ctx, p, "notifications/unread")
}

// MarkRead marks a notification read on the platform. Callers feed the
// matching EventRead into Reduce themselves once the call succeeds.
func MarkRead(ctx context.Context, p *rest.Provider, id int64) rest.Result[rest.Empty] {
	path := rest.JoinPath("notifications", rest.ID(id), "read")
	return rest.Post[rest.Empty, rest.Empty](ctx, p, path, rest.Empty{})
}
