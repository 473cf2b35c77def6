package domain

// Booking statuses as the platform reports them.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking represents a reservation of a lodging for a date range.
type Booking struct {
	BaseModel
	LodgingID int64   `gorm:"index;not null" json:"lodgingId" binding:"required"`
	GuestName string  `gorm:"size:200;not null" json:"guestName" binding:"required,min=2,max=200"`
	CheckIn   string  `gorm:"size:10;not null" json:"checkIn" binding:"required"`
	CheckOut  string  `gorm:"size:10;not null" json:"checkOut" binding:"required"`
	Guests    int     `json:"guests" binding:"required,min=1"`
	Status    string  `gorm:"size:20" json:"status"`
	Total     float64 `json:"total"`
}
