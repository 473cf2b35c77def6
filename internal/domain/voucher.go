package domain

// Voucher represents a commerce discount voucher.
type Voucher struct {
	BaseModel
	Code       string  `gorm:"size:40;uniqueIndex;not null" json:"code" binding:"required,min=4,max=40"`
	Percentage float64 `json:"percentage" binding:"min=0,max=100"`
	ExpiresAt  string  `gorm:"size:10" json:"expiresAt"`
	Redeemed   bool    `json:"redeemed"`
}
