package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

// bookingFilters applies the shared booking query filters.
func bookingFilters(c *gin.Context, db *gorm.DB) *gorm.DB {
	if lodgingID, err := strconv.ParseInt(c.Query("lodgingId"), 10, 64); err == nil && lodgingID > 0 {
		db = db.Where("lodging_id = ?", lodgingID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		db = db.Where("check_in >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		db = db.Where("check_out <= ?", to)
	}
	return db
}

// PagedBookings handles GET /api/bookings.
func (s *Server) PagedBookings(c *gin.Context) {
	pageNumber, pageSize := parsePage(c)

	base := bookingFilters(c, s.db.WithContext(c.Request.Context()).Model(&domain.Booking{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	var bookings []domain.Booking
	if err := base.Scopes(paginate(pageNumber, pageSize)).Find(&bookings).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	paged(c, bookings, total, pageNumber, pageSize)
}

// GetBooking handles GET /api/bookings/:id.
func (s *Server) GetBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var booking domain.Booking
	if err := s.db.WithContext(c.Request.Context()).First(&booking, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, booking)
}

// CountBookings handles GET /api/bookings/count. Pagination parameters
// are ignored; only the filters apply.
func (s *Server) CountBookings(c *gin.Context) {
	base := bookingFilters(c, s.db.WithContext(c.Request.Context()).Model(&domain.Booking{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, total)
}

// CreateBooking handles PUT /api/bookings. Platform convention: create is a PUT.
// A created booking starts out pending and raises a booking notification.
func (s *Server) CreateBooking(c *gin.Context) {
	var booking domain.Booking
	if !bindAndValidate(c, &booking) {
		return
	}
	booking.ID = 0
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}
	if booking.CheckOut <= booking.CheckIn {
		fail(c, http.StatusBadRequest, "checkOut must be after checkIn")
		return
	}

	// Lodging lookup and booking insert are one unit: a booking must
	// never reference a lodging deleted mid-request.
	var lodging domain.Lodging
	err := withTx(s.db.WithContext(c.Request.Context()), func(tx *gorm.DB) error {
		if err := tx.First(&lodging, booking.LodgingID).Error; err != nil {
			return err
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		respondError(c, mapError(err))
		return
	}

	s.notify(c, domain.Notification{
		Category: domain.NotifyBooking,
		Title:    "New booking",
		Body:     booking.GuestName + " booked " + lodging.Name,
	})

	created(c, booking)
}

// UpdateBooking handles POST /api/bookings. Platform convention:
// update is a POST; the body carries the id.
func (s *Server) UpdateBooking(c *gin.Context) {
	var booking domain.Booking
	if !bindAndValidate(c, &booking) {
		return
	}
	if booking.ID < 1 {
		fail(c, http.StatusBadRequest, "id is required for update")
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var existing domain.Booking
	if err := db.First(&existing, booking.ID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	if err := db.Save(&booking).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (s *Server) DeleteBooking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result := s.db.WithContext(c.Request.Context()).Delete(&domain.Booking{}, id)
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
