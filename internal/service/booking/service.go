// Package booking is the client for the booking resource.
package booking

import (
	"context"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// Service defines the booking operations.
type Service interface {
	Paged(ctx context.Context, q domain.BookingQuery) rest.Paged[domain.Booking]
	Get(ctx context.Context, id int64) rest.Result[domain.Booking]
	Count(ctx context.Context, q domain.BookingQuery) rest.Result[int64]
	Create(ctx context.Context, b domain.Booking) rest.Result[domain.Booking]
	Update(ctx context.Context, b domain.Booking) rest.Result[domain.Booking]
	Delete(ctx context.Context, id int64) rest.Result[rest.Empty]
}

type service struct {
	provider *rest.Provider
}

// NewService creates a booking Service backed by the given provider.
func NewService(p *rest.Provider) Service {
	return &service{provider: p}
}

// Paged retrieves one page of bookings matching the query.
func (s *service) Paged(ctx context.Context, q domain.BookingQuery) rest.Paged[domain.Booking] {
	q.PageQuery = q.Normalize()
	return rest.GetPaged[domain.Booking](ctx, s.provider, "bookings", q)
}

// Get retrieves a single booking by id.
func (s *service) Get(ctx context.Context, id int64) rest.Result[domain.Booking] {
	return rest.Get[domain.Booking](ctx, s.provider, rest.JoinPath("bookings", rest.ID(id)))
}

// Count returns how many bookings match the query filters.
// Pagination fields of the query are ignored by the endpoint.
func (s *service) Count(ctx context.Context, q domain.BookingQuery) rest.Result[int64] {
	return rest.GetWith[int64](ctx, s.provider, "bookings/count", q)
}

// Create adds a new booking. Platform convention: create is a PUT.
func (s *service) Create(ctx context.Context, b domain.Booking) rest.Result[domain.Booking] {
	return rest.Put[domain.Booking, domain.Booking](ctx, s.provider, "bookings", b)
}

// Update saves changes to an existing booking. Platform convention: update is a POST.
func (s *service) Update(ctx context.Context, b domain.Booking) rest.Result[domain.Booking] {
	return rest.Post[domain.Booking, domain.Booking](ctx, s.provider, "bookings", b)
}

// Delete removes a booking by id.
func (s *service) Delete(ctx context.Context, id int64) rest.Result[rest.Empty] {
	return s.provider.Delete(ctx, "bookings", rest.ID(id))
}
