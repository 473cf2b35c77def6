// Package review is the client for vacation reviews.
//
// The platform has never shipped the review mutation endpoints. The
// mutation methods below fail with a NotImplemented result without
// touching the network; callers rely on that signal, so they must not
// silently no-op.
package review

import (
	"context"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// Service defines the review operations.
type Service interface {
	ForLodging(ctx context.Context, lodgingID int64) rest.Result[[]domain.Review]
	Get(ctx context.Context, id int64) rest.Result[domain.Review]

	// Unsupported on the platform; always fail with NotImplemented.
	Create(ctx context.Context, r domain.Review) rest.Result[domain.Review]
	Update(ctx context.Context, r domain.Review) rest.Result[domain.Review]
	Delete(ctx context.Context, id int64) rest.Result[rest.Empty]
}

type service struct {
	provider *rest.Provider
}

// NewService creates a review Service backed by the given provider.
func NewService(p *rest.Provider) Service {
	return &service{provider: p}
}

// ForLodging retrieves the reviews left for a lodging.
func (s *service) ForLodging(ctx context.Context, lodgingID int64) rest.Result[[]domain.Review] {
	return rest.Get[[]domain.Review](ctx, s.provider, rest.JoinPath("reviews/children", rest.ID(lodgingID)))
}

// Get retrieves a single review by id.
func (s *service) Get(ctx context.Context, id int64) rest.Result[domain.Review] {
	return rest.Get[domain.Review](ctx, s.provider, rest.JoinPath("reviews", rest.ID(id)))
}

// Create is not supported by the platform.
func (s *service) Create(context.Context, domain.Review) rest.Result[domain.Review] {
	return rest.Fail[domain.Review](domain.CodeNotImplemented, "review creation is not supported")
}

// Update is not supported by the platform.
func (s *service) Update(context.Context, domain.Review) rest.Result[domain.Review] {
	return rest.Fail[domain.Review](domain.CodeNotImplemented, "review update is not supported")
}

// Delete is not supported by the platform.
func (s *service) Delete(context.Context, int64) rest.Result[rest.Empty] {
	return rest.Fail[rest.Empty](domain.CodeNotImplemented, "review deletion is not supported")
}
