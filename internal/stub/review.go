package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staykit/staykit-go/internal/domain"
)

// ReviewsForLodging handles GET /api/reviews/children/:id.
func (s *Server) ReviewsForLodging(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var reviews []domain.Review
	if err := s.db.WithContext(c.Request.Context()).
		Where("lodging_id = ?", id).Find(&reviews).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, reviews)
}

// GetReview handles GET /api/reviews/:id.
func (s *Server) GetReview(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var review domain.Review
	if err := s.db.WithContext(c.Request.Context()).First(&review, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, review)
}

// ReviewMutationNotImplemented answers review create, update, and
// delete with 501. The platform has never shipped these endpoints; the
// stub mirrors that so the client's NotImplemented path stays honest
// end to end.
func (s *Server) ReviewMutationNotImplemented(c *gin.Context) {
	fail(c, http.StatusNotImplemented, "review mutations are not supported")
}
