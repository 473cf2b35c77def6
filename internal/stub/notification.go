package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staykit/staykit-go/internal/domain"
)

// notify stores a notification and pushes it to hub subscribers.
// Failures are logged, never surfaced: a booking must not fail because
// its notification could not be written.
func (s *Server) notify(c *gin.Context, n domain.Notification) {
	if err := s.db.WithContext(c.Request.Context()).Create(&n).Error; err != nil {
		s.logger.WarnContext(c.Request.Context(), "store notification failed", "error", err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(n)
	}
}

// CountNotifications handles GET /api/notifications/count?category=X,
// returning the unread count for one category.
func (s *Server) CountNotifications(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		fail(c, http.StatusBadRequest, "category is required")
		return
	}

	var total int64
	if err := s.db.WithContext(c.Request.Context()).Model(&domain.Notification{}).
		Where("category = ? AND read = ?", category, false).
		Count(&total).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, total)
}

// UnreadNotifications handles GET /api/notifications/unread.
func (s *Server) UnreadNotifications(c *gin.Context) {
	var notifications []domain.Notification
	if err := s.db.WithContext(c.Request.Context()).
		Where("read = ?", false).Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, notifications)
}

// MarkNotificationRead handles POST /api/notifications/:id/read.
// Re-reading an already read notification is a no-op.
func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var notification domain.Notification
	if err := db.First(&notification, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	if !notification.Read {
		notification.Read = true
		if err := db.Save(&notification).Error; err != nil {
			respondError(c, mapError(err))
			return
		}
	}
	ok(c, nil)
}
