package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

const ownerLodging = "lodging"

// ListLodgings handles GET /api/lodgings/all.
func (s *Server) ListLodgings(c *gin.Context) {
	var lodgings []domain.Lodging
	if err := s.db.WithContext(c.Request.Context()).
		Preload("Amenities").Find(&lodgings).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, lodgings)
}

// PagedLodgings handles GET /api/lodgings with searchTerm and cityId filters.
func (s *Server) PagedLodgings(c *gin.Context) {
	pageNumber, pageSize := parsePage(c)

	base := s.db.WithContext(c.Request.Context()).Model(&domain.Lodging{})
	if term := c.Query("searchTerm"); term != "" {
		base = base.Where("name LIKE ?", "%"+term+"%")
	}
	if cityID, err := strconv.ParseInt(c.Query("cityId"), 10, 64); err == nil && cityID > 0 {
		base = base.Where("city_id = ?", cityID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	var lodgings []domain.Lodging
	if err := base.Scopes(paginate(pageNumber, pageSize)).
		Preload("Amenities").Find(&lodgings).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	paged(c, lodgings, total, pageNumber, pageSize)
}

// GetLodging handles GET /api/lodgings/:id.
func (s *Server) GetLodging(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := s.db.WithContext(c.Request.Context())

	var lodging domain.Lodging
	if err := db.Preload("Amenities").First(&lodging, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	owner := strconv.FormatInt(id, 10)
	if lodging.Images, err = mediaFor(db, ownerLodging, owner, mediaKindImage); err != nil {
		respondError(c, err)
		return
	}
	if lodging.Videos, err = mediaFor(db, ownerLodging, owner, mediaKindVideo); err != nil {
		respondError(c, err)
		return
	}

	ok(c, lodging)
}

// CreateLodging handles PUT /api/lodgings. Platform convention: create is a PUT.
func (s *Server) CreateLodging(c *gin.Context) {
	var lodging domain.Lodging
	if !bindAndValidate(c, &lodging) {
		return
	}
	lodging.ID = 0

	if err := s.db.WithContext(c.Request.Context()).Omit("Amenities").Create(&lodging).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	created(c, lodging)
}

// UpdateLodging handles POST /api/lodgings. Platform convention:
// update is a POST; the body carries the id.
func (s *Server) UpdateLodging(c *gin.Context) {
	var lodging domain.Lodging
	if !bindAndValidate(c, &lodging) {
		return
	}
	if lodging.ID < 1 {
		fail(c, http.StatusBadRequest, "id is required for update")
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var existing domain.Lodging
	if err := db.First(&existing, lodging.ID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	if err := db.Omit("Amenities").Save(&lodging).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, lodging)
}

// DeleteLodging handles DELETE /api/lodgings/:id.
func (s *Server) DeleteLodging(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result := s.db.WithContext(c.Request.Context()).Delete(&domain.Lodging{}, id)
	if result.Error != nil {
		respondError(c, mapError(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, domain.ErrNotFound)
		return
	}
	ok(c, nil)
}

// ListAmenities handles GET /api/amenities/all.
func (s *Server) ListAmenities(c *gin.Context) {
	var amenities []domain.Amenity
	if err := s.db.WithContext(c.Request.Context()).Find(&amenities).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, amenities)
}

// ChildAmenities handles GET /api/amenities/children/:id, returning
// the amenities attached to a lodging.
func (s *Server) ChildAmenities(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var lodging domain.Lodging
	if err := db.Preload("Amenities").First(&lodging, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	if lodging.Amenities == nil {
		lodging.Amenities = []domain.Amenity{}
	}
	ok(c, lodging.Amenities)
}

// AddAmenity handles POST /api/lodgings/:id/amenities/:amenityId.
func (s *Server) AddAmenity(c *gin.Context) {
	lodgingID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	amenityID, err := strconv.ParseInt(c.Param("amenityId"), 10, 64)
	if err != nil || amenityID < 1 {
		fail(c, http.StatusBadRequest, "invalid amenity id")
		return
	}

	// Both lookups and the join-table append happen in one
	// transaction so a concurrent delete cannot orphan the link.
	err = withTx(s.db.WithContext(c.Request.Context()), func(tx *gorm.DB) error {
		var lodging domain.Lodging
		if err := tx.First(&lodging, lodgingID).Error; err != nil {
			return err
		}
		var amenity domain.Amenity
		if err := tx.First(&amenity, amenityID).Error; err != nil {
			return err
		}
		return tx.Model(&lodging).Association("Amenities").Append(&amenity)
	})
	if err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, nil)
}

// RemoveAmenity handles DELETE /api/lodgings/:id/amenities/:amenityId.
func (s *Server) RemoveAmenity(c *gin.Context) {
	lodgingID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	amenityID, err := strconv.ParseInt(c.Param("amenityId"), 10, 64)
	if err != nil || amenityID < 1 {
		fail(c, http.StatusBadRequest, "invalid amenity id")
		return
	}

	db := s.db.WithContext(c.Request.Context())

	var lodging domain.Lodging
	if err := db.First(&lodging, lodgingID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	if err := db.Model(&lodging).Association("Amenities").Delete(&domain.Amenity{BaseModel: domain.BaseModel{ID: amenityID}}); err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, nil)
}

// UploadLodgingImage handles POST /api/lodgings/:id/images.
func (s *Server) UploadLodgingImage(c *gin.Context) {
	s.uploadLodgingMedia(c, mediaKindImage)
}

// UploadLodgingVideo handles POST /api/lodgings/:id/videos.
func (s *Server) UploadLodgingVideo(c *gin.Context) {
	s.uploadLodgingMedia(c, mediaKindVideo)
}

func (s *Server) uploadLodgingMedia(c *gin.Context, kind string) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var lodging domain.Lodging
	if err := s.db.WithContext(c.Request.Context()).First(&lodging, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	s.handleUpload(c, ownerLodging, strconv.FormatInt(id, 10), kind, true)
}

// RemoveLodgingImage handles DELETE /api/lodgings/:id/images/:mediaId.
func (s *Server) RemoveLodgingImage(c *gin.Context) {
	s.removeLodgingMedia(c, mediaKindImage)
}

// RemoveLodgingVideo handles DELETE /api/lodgings/:id/videos/:mediaId.
func (s *Server) RemoveLodgingVideo(c *gin.Context) {
	s.removeLodgingMedia(c, mediaKindVideo)
}

func (s *Server) removeLodgingMedia(c *gin.Context, kind string) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	s.deleteMedia(c, ownerLodging, strconv.FormatInt(id, 10), kind, c.Param("mediaId"))
}
