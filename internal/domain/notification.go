package domain

import "time"

// Notification categories emitted by the platform.
const (
	NotifyBooking          = "Booking"
	NotifyChatMessage      = "ChatMessage"
	NotifyActivityGroup    = "ActivityGroup"
	NotifyActivityCategory = "ActivityCategory"
	NotifySystem           = "System"
)

// Notification is one push notification delivered over the hub or
// listed by the notifications endpoints.
type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index" json:"userId"`
	Category  string    `gorm:"index" json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
