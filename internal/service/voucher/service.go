// Package voucher is the client for the commerce voucher resource.
package voucher

import (
	"context"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// Service defines the voucher operations.
type Service interface {
	List(ctx context.Context) rest.Result[[]domain.Voucher]
	Get(ctx context.Context, id int64) rest.Result[domain.Voucher]
	Create(ctx context.Context, v domain.Voucher) rest.Result[domain.Voucher]
	Update(ctx context.Context, v domain.Voucher) rest.Result[domain.Voucher]
	Delete(ctx context.Context, id int64) rest.Result[rest.Empty]
	Redeem(ctx context.Context, id int64) rest.Result[domain.Voucher]
}

type service struct {
	provider *rest.Provider
}

// NewService creates a voucher Service backed by the given provider.
func NewService(p *rest.Provider) Service {
	return &service{provider: p}
}

// List retrieves every voucher.
func (s *service) List(ctx context.Context) rest.Result[[]domain.Voucher] {
	return rest.Get[[]domain.Voucher](ctx, s.provider, "vouchers/all")
}

// Get retrieves a single voucher by id.
func (s *service) Get(ctx context.Context, id int64) rest.Result[domain.Voucher] {
	return rest.Get[domain.Voucher](ctx, s.provider, rest.JoinPath("vouchers", rest.ID(id)))
}

// Create adds a new voucher. Platform convention: create is a PUT.
func (s *service) Create(ctx context.Context, v domain.Voucher) rest.Result[domain.Voucher] {
	return rest.Put[domain.Voucher, domain.Voucher](ctx, s.provider, "vouchers", v)
}

// Update saves changes to an existing voucher. Platform convention: update is a POST.
func (s *service) Update(ctx context.Context, v domain.Voucher) rest.Result[domain.Voucher] {
	return rest.Post[domain.Voucher, domain.Voucher](ctx, s.provider, "vouchers", v)
}

// Delete removes a voucher by id.
func (s *service) Delete(ctx context.Context, id int64) rest.Result[rest.Empty] {
	return s.provider.Delete(ctx, "vouchers", rest.ID(id))
}

// Redeem marks a voucher as redeemed.
func (s *service) Redeem(ctx context.Context, id int64) rest.Result[domain.Voucher] {
	path := rest.JoinPath("vouchers", rest.ID(id), "redeem")
	return rest.Post[rest.Empty, domain.Voucher](ctx, s.provider, path, rest.Empty{})
}
