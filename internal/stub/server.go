package stub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server holds the stub platform handlers and their dependencies.
type Server struct {
	db     *gorm.DB
	logger *slog.Logger
	auth   *Authenticator
	hub    *Hub
}

// NewServer creates a Server over the given database.
func NewServer(db *gorm.DB, logger *slog.Logger, auth *Authenticator, hub *Hub) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is nil")
	}
	if auth == nil {
		return nil, errors.New("authenticator is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{db: db, logger: logger, auth: auth, hub: hub}, nil
}

// RegisterRoutes wires the full platform surface onto the engine.
// Create is PUT and update is POST on every resource; clients depend
// on that inversion. Each mutation route names its permission from the
// compile-time table next to the handler, so the authorization surface
// reads off this function top to bottom.
func (s *Server) RegisterRoutes(r *gin.Engine) error {
	if r == nil {
		return errors.New("router is nil")
	}

	r.GET("/health", s.Health)

	// The hub authenticates via the bearer token on the handshake, but
	// stays open to unauthenticated clients for local development.
	r.GET("/notificationsHub", s.hub.Handle)

	api := r.Group("/api")

	// Auth endpoints are the only unauthenticated API surface.
	api.POST("/auth/login", s.Login)
	api.PUT("/auth/register", s.Register)

	authed := api.Group("")
	authed.Use(s.auth.RequireAuth())

	// Lodgings and amenities.
	authed.GET("/lodgings/all", RequirePermission(PermLodgingsRead), s.ListLodgings)
	authed.GET("/lodgings", RequirePermission(PermLodgingsRead), s.PagedLodgings)
	authed.GET("/lodgings/:id", RequirePermission(PermLodgingsRead), s.GetLodging)
	authed.PUT("/lodgings", RequirePermission(PermLodgingsWrite), s.CreateLodging)
	authed.POST("/lodgings", RequirePermission(PermLodgingsWrite), s.UpdateLodging)
	authed.DELETE("/lodgings/:id", RequirePermission(PermLodgingsWrite), s.DeleteLodging)
	authed.GET("/amenities/all", RequirePermission(PermLodgingsRead), s.ListAmenities)
	authed.GET("/amenities/children/:id", RequirePermission(PermLodgingsRead), s.ChildAmenities)
	authed.POST("/lodgings/:id/amenities/:amenityId", RequirePermission(PermLodgingsWrite), s.AddAmenity)
	authed.DELETE("/lodgings/:id/amenities/:amenityId", RequirePermission(PermLodgingsWrite), s.RemoveAmenity)
	authed.POST("/lodgings/:id/images", RequirePermission(PermLodgingsWrite), s.UploadLodgingImage)
	authed.DELETE("/lodgings/:id/images/:mediaId", RequirePermission(PermLodgingsWrite), s.RemoveLodgingImage)
	authed.POST("/lodgings/:id/videos", RequirePermission(PermLodgingsWrite), s.UploadLodgingVideo)
	authed.DELETE("/lodgings/:id/videos/:mediaId", RequirePermission(PermLodgingsWrite), s.RemoveLodgingVideo)

	// Bookings.
	authed.GET("/bookings", RequirePermission(PermBookingsRead), s.PagedBookings)
	authed.GET("/bookings/count", RequirePermission(PermBookingsRead), s.CountBookings)
	authed.GET("/bookings/:id", RequirePermission(PermBookingsRead), s.GetBooking)
	authed.PUT("/bookings", RequirePermission(PermBookingsWrite), s.CreateBooking)
	authed.POST("/bookings", RequirePermission(PermBookingsWrite), s.UpdateBooking)
	authed.DELETE("/bookings/:id", RequirePermission(PermBookingsWrite), s.DeleteBooking)

	// Vouchers.
	authed.GET("/vouchers/all", RequirePermission(PermVouchersRead), s.ListVouchers)
	authed.GET("/vouchers/:id", RequirePermission(PermVouchersRead), s.GetVoucher)
	authed.PUT("/vouchers", RequirePermission(PermVouchersWrite), s.CreateVoucher)
	authed.POST("/vouchers", RequirePermission(PermVouchersWrite), s.UpdateVoucher)
	authed.DELETE("/vouchers/:id", RequirePermission(PermVouchersWrite), s.DeleteVoucher)
	authed.POST("/vouchers/:id/redeem", RequirePermission(PermVouchersRedeem), s.RedeemVoucher)

	// Reviews: reads only; mutations answer 501.
	authed.GET("/reviews/children/:id", RequirePermission(PermReviewsRead), s.ReviewsForLodging)
	authed.GET("/reviews/:id", RequirePermission(PermReviewsRead), s.GetReview)
	authed.PUT("/reviews", s.ReviewMutationNotImplemented)
	authed.POST("/reviews", s.ReviewMutationNotImplemented)
	authed.DELETE("/reviews/:id", s.ReviewMutationNotImplemented)

	// Chat.
	authed.GET("/chat/groups/all", RequirePermission(PermChatUse), s.ListChatGroups)
	authed.GET("/chat/groups/:id", RequirePermission(PermChatUse), s.GetChatGroup)
	authed.PUT("/chat/groups", RequirePermission(PermChatUse), s.CreateChatGroup)
	authed.DELETE("/chat/groups/:id", RequirePermission(PermChatUse), s.DeleteChatGroup)
	authed.GET("/chat/messages", RequirePermission(PermChatUse), s.PagedChatMessages)
	authed.PUT("/chat/messages", RequirePermission(PermChatUse), s.SendChatMessage)
	authed.POST("/chat/messages/read", RequirePermission(PermChatUse), s.MarkChatMessageRead)
	authed.POST("/chat/groups/:id/images", RequirePermission(PermChatUse), s.UploadChatImages)
	authed.POST("/chat/groups/:id/documents", RequirePermission(PermChatUse), s.UploadChatDocuments)
	authed.POST("/chat/groups/:id/videos", RequirePermission(PermChatUse), s.UploadChatVideos)

	// Notifications.
	authed.GET("/notifications/count", RequirePermission(PermNotifyRead), s.CountNotifications)
	authed.GET("/notifications/unread", RequirePermission(PermNotifyRead), s.UnreadNotifications)
	authed.POST("/notifications/:id/read", RequirePermission(PermNotifyRead), s.MarkNotificationRead)

	// Unknown routes answer through the envelope too.
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "not found")
	})

	return nil
}

// Health pings the database and reports component status.
func (s *Server) Health(c *gin.Context) {
	dbStatus := "ok"
	status := "ok"
	code := http.StatusOK

	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus, status, code = "error", "degraded", http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus, status, code = "error", "degraded", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
