package domain

// Platform roles.
const (
	RoleAdmin = "admin"
	RoleHost  = "host"
	RoleGuest = "guest"
)

// User is a platform account. PasswordHash holds a bcrypt hash and is
// never serialized.
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:32;not null;default:guest" json:"role"`
}
