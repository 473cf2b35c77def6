// Package lodging is the client for the lodging resource and its
// amenity and media sub-resources. Every method maps one business
// operation onto exactly one provider call; the envelope is passed
// through unchanged.
package lodging

import (
	"context"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// Service defines the lodging operations.
type Service interface {
	List(ctx context.Context) rest.Result[[]domain.Lodging]
	Paged(ctx context.Context, q domain.LodgingQuery) rest.Paged[domain.Lodging]
	Get(ctx context.Context, id int64) rest.Result[domain.Lodging]
	Create(ctx context.Context, l domain.Lodging) rest.Result[domain.Lodging]
	Update(ctx context.Context, l domain.Lodging) rest.Result[domain.Lodging]
	Delete(ctx context.Context, id int64) rest.Result[rest.Empty]

	Amenities(ctx context.Context) rest.Result[[]domain.Amenity]
	ChildAmenities(ctx context.Context, lodgingID int64) rest.Result[[]domain.Amenity]
	AddAmenity(ctx context.Context, lodgingID, amenityID int64) rest.Result[rest.Empty]
	RemoveAmenity(ctx context.Context, lodgingID, amenityID int64) rest.Result[rest.Empty]

	AddImage(ctx context.Context, lodgingID int64, file rest.UploadFile, progress rest.ProgressFunc) rest.Result[domain.Media]
	RemoveImage(ctx context.Context, ref domain.MediaRef) rest.Result[rest.Empty]
	AddVideo(ctx context.Context, lodgingID int64, file rest.UploadFile, progress rest.ProgressFunc) rest.Result[domain.Media]
	RemoveVideo(ctx context.Context, ref domain.MediaRef) rest.Result[rest.Empty]
}

type service struct {
	provider *rest.Provider
}

// NewService creates a lodging Service backed by the given provider.
func NewService(p *rest.Provider) Service {
	return &service{provider: p}
}

// List retrieves every lodging without pagination.
func (s *service) List(ctx context.Context) rest.Result[[]domain.Lodging] {
	return rest.Get[[]domain.Lodging](ctx, s.provider, "lodgings/all")
}

// Paged retrieves one page of lodgings matching the query.
func (s *service) Paged(ctx context.Context, q domain.LodgingQuery) rest.Paged[domain.Lodging] {
	q.PageQuery = q.Normalize()
	return rest.GetPaged[domain.Lodging](ctx, s.provider, "lodgings", q)
}

// Get retrieves a single lodging by id.
func (s *service) Get(ctx context.Context, id int64) rest.Result[domain.Lodging] {
	return rest.Get[domain.Lodging](ctx, s.provider, rest.JoinPath("lodgings", rest.ID(id)))
}

// Create adds a new lodging. Platform convention: create is a PUT.
func (s *service) Create(ctx context.Context, l domain.Lodging) rest.Result[domain.Lodging] {
	return rest.Put[domain.Lodging, domain.Lodging](ctx, s.provider, "lodgings", l)
}

// Update saves changes to an existing lodging. Platform convention: update is a POST.
func (s *service) Update(ctx context.Context, l domain.Lodging) rest.Result[domain.Lodging] {
	return rest.Post[domain.Lodging, domain.Lodging](ctx, s.provider, "lodgings", l)
}

// Delete removes a lodging by id.
func (s *service) Delete(ctx context.Context, id int64) rest.Result[rest.Empty] {
	return s.provider.Delete(ctx, "lodgings", rest.ID(id))
}

// Amenities retrieves the full amenity catalogue.
func (s *service) Amenities(ctx context.Context) rest.Result[[]domain.Amenity] {
	return rest.Get[[]domain.Amenity](ctx, s.provider, "amenities/all")
}

// ChildAmenities retrieves the amenities attached to a lodging.
func (s *service) ChildAmenities(ctx context.Context, lodgingID int64) rest.Result[[]domain.Amenity] {
	return rest.Get[[]domain.Amenity](ctx, s.provider, rest.JoinPath("amenities/children", rest.ID(lodgingID)))
}

// AddAmenity attaches an amenity to a lodging.
func (s *service) AddAmenity(ctx context.Context, lodgingID, amenityID int64) rest.Result[rest.Empty] {
	path := rest.JoinPath("lodgings", rest.ID(lodgingID), "amenities", rest.ID(amenityID))
	return rest.Post[rest.Empty, rest.Empty](ctx, s.provider, path, rest.Empty{})
}

// RemoveAmenity detaches an amenity from a lodging.
func (s *service) RemoveAmenity(ctx context.Context, lodgingID, amenityID int64) rest.Result[rest.Empty] {
	path := rest.JoinPath("lodgings", rest.ID(lodgingID), "amenities")
	return s.provider.Delete(ctx, path, rest.ID(amenityID))
}

// AddImage uploads an image for a lodging.
func (s *service) AddImage(ctx context.Context, lodgingID int64, file rest.UploadFile, progress rest.ProgressFunc) rest.Result[domain.Media] {
	path := rest.JoinPath("lodgings", rest.ID(lodgingID), "images")
	return rest.Upload[domain.Media](ctx, s.provider, path, []rest.UploadFile{file}, nil, progress)
}

// RemoveImage detaches and deletes an uploaded image.
func (s *service) RemoveImage(ctx context.Context, ref domain.MediaRef) rest.Result[rest.Empty] {
	path := rest.JoinPath("lodgings", rest.ID(ref.EntityID), "images")
	return s.provider.Delete(ctx, path, ref.MediaID)
}

// AddVideo uploads a video for a lodging.
func (s *service) AddVideo(ctx context.Context, lodgingID int64, file rest.UploadFile, progress rest.ProgressFunc) rest.Result[domain.Media] {
	path := rest.JoinPath("lodgings", rest.ID(lodgingID), "videos")
	return rest.Upload[domain.Media](ctx, s.provider, path, []rest.UploadFile{file}, nil, progress)
}

// RemoveVideo detaches and deletes an uploaded video.
func (s *service) RemoveVideo(ctx context.Context, ref domain.MediaRef) rest.Result[rest.Empty] {
	path := rest.JoinPath("lodgings", rest.ID(ref.EntityID), "videos")
	return s.provider.Delete(ctx, path, ref.MediaID)
}
