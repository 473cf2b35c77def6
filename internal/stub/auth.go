package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

// Permission names one guarded capability on the platform.
type Permission string

// The full permission surface. Routes reference these constants
// directly, so an unknown permission is a compile error rather than a
// typo discovered at runtime.
const (
	PermLodgingsRead   Permission = "lodgings.read"
	PermLodgingsWrite  Permission = "lodgings.write"
	PermBookingsRead   Permission = "bookings.read"
	PermBookingsWrite  Permission = "bookings.write"
	PermVouchersRead   Permission = "vouchers.read"
	PermVouchersWrite  Permission = "vouchers.write"
	PermVouchersRedeem Permission = "vouchers.redeem"
	PermReviewsRead    Permission = "reviews.read"
	PermChatUse        Permission = "chat.use"
	PermNotifyRead     Permission = "notifications.read"
)

// rolePermissions is the complete role-to-permission table. It is
// deliberately spelled out per role instead of being derived or stored,
// so a reviewer can audit the whole authorization surface in one place.
var rolePermissions = map[string][]Permission{
	domain.RoleAdmin: {
		PermLodgingsRead, PermLodgingsWrite,
		PermBookingsRead, PermBookingsWrite,
		PermVouchersRead, PermVouchersWrite, PermVouchersRedeem,
		PermReviewsRead,
		PermChatUse,
		PermNotifyRead,
	},
	domain.RoleHost: {
		PermLodgingsRead, PermLodgingsWrite,
		PermBookingsRead, PermBookingsWrite,
		PermVouchersRead, PermVouchersRedeem,
		PermReviewsRead,
		PermChatUse,
		PermNotifyRead,
	},
	domain.RoleGuest: {
		PermLodgingsRead,
		PermBookingsRead, PermBookingsWrite,
		PermVouchersRead, PermVouchersRedeem,
		PermReviewsRead,
		PermChatUse,
		PermNotifyRead,
	},
}

// hasPermission reports whether the role grants the permission.
func hasPermission(role string, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// claims is the JWT payload issued at login.
type claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies platform bearer tokens.
type Authenticator struct {
	secret []byte
	expiry time.Duration
}

// NewAuthenticator creates an Authenticator with the given HMAC secret
// and token lifetime.
func NewAuthenticator(secret string, expiry time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), expiry: expiry}
}

// IssueToken signs a token for the user.
func (a *Authenticator) IssueToken(u *domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
	})
	return token.SignedString(a.secret)
}

// VerifyToken parses and validates a signed token.
func (a *Authenticator) VerifyToken(raw string) (*claims, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
			return nil, domain.NewAppError(domain.CodeUnauthorized, "unexpected signing method", nil)
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "invalid token", err)
	}
	c, valid := token.Claims.(*claims)
	if !valid || !token.Valid {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "invalid token", nil)
	}
	return c, nil
}

const claimsContextKey = "auth_claims"

// RequireAuth returns a middleware that rejects requests without a
// valid bearer token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			fail(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		cl, err := a.VerifyToken(raw)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(claimsContextKey, cl)
		c.Next()
	}
}

// RequirePermission returns a middleware that rejects authenticated
// requests whose role lacks the permission. It must run after RequireAuth.
func RequirePermission(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl := currentClaims(c)
		if cl == nil {
			fail(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		if !hasPermission(cl.Role, perm) {
			fail(c, http.StatusForbidden, "permission denied: "+string(perm))
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentClaims returns the verified claims for the request, or nil.
func currentClaims(c *gin.Context) *claims {
	if v, exists := c.Get(claimsContextKey); exists {
		if cl, valid := v.(*claims); valid {
			return cl
		}
	}
	return nil
}

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// registerRequest is the PUT /auth/register body.
type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// loginResponse carries the issued token.
type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var user domain.User
	if err := s.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same answer for unknown email and bad password.
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.IssueToken(&user)
	if err != nil {
		respondError(c, domain.NewAppError(domain.CodeInternal, "issue token", err))
		return
	}

	ok(c, loginResponse{Token: token, User: &user})
}

// Register handles PUT /api/auth/register.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, domain.NewAppError(domain.CodeInternal, "hash password", err))
		return
	}

	user := domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	created(c, user)
}

// seedUser inserts a user with the given role if the email is unused.
// Used by tests and first-run seeding.
func seedUser(db *gorm.DB, name, email, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	return db.Where(domain.User{Email: email}).FirstOrCreate(&user).Error
}
