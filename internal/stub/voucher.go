package stub

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staykit/staykit-go/internal/domain"
)

// ListVouchers handles GET /api/vouchers/all.
func (s *Server) ListVouchers(c *gin.Context) {
	var vouchers []domain.Voucher
	if err := s.db.WithContext(c.Request.Context()).Find(&vouchers).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, vouchers)
}

// GetVoucher handles GET /api/vouchers/:id.
func (s *Server) GetVoucher(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var voucher domain.Voucher
	if err := s.db.WithContext(c.Request.Context()).First(&voucher, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, voucher)
}

// CreateVoucher handles PUT /api/vouchers. Platform convention: create is a PUT.
func (s *Server) CreateVoucher(c *gin.Context) {
	var voucher domain.Voucher
	if !bindAndValidate(c, &voucher) {
		return
	}
	voucher.ID = 0
	voucher.Redeemed = false

	if err := s.db.WithContext(c.Request.Context()).Create(&voucher).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	created(c, voucher)
}

// UpdateVoucher handles POST /api/vouchers. Platform convention:
// update is a POST; the body carries the id.
func (s *Server) UpdateVoucher(c *gin.Context) {
	var voucher domain.Voucher
	if !bindAndValidate(c, &voucher) {
		return
	}
	if voucher.ID < 1 {
		fail(c, http.StatusBadRequest, "id is required for update")
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var existing domain.Voucher
	if err := db.First(&existing, voucher.ID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	if err := db.Save(&voucher).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, voucher)
}

// DeleteVoucher handles DELETE /api/vouchers/:id.
func (s *Server) DeleteVoucher(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result := s.db.WithContext(c.Request.Context()).Delete(&domain.Voucher{}, id)
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

// RedeemVoucher handles POST /api/vouchers/:id/redeem. Redeeming twice
// or past expiry fails through the envelope.
func (s *Server) RedeemVoucher(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var voucher domain.Voucher
	if err := db.First(&voucher, id).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	if voucher.Redeemed {
		fail(c, http.StatusBadRequest, "voucher already redeemed")
		return
	}
	if voucher.ExpiresAt != "" && voucher.ExpiresAt < time.Now().Format("2006-01-02") {
		fail(c, http.StatusBadRequest, "voucher expired")
		return
	}

	voucher.Redeemed = true
	if err := db.Save(&voucher).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, voucher)
}
