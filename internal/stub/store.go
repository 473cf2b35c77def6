package stub

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeValidation, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// parseID reads the :id path parameter as a positive int64.
func parseID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id: "+raw, nil)
	}
	return id, nil
}

// parsePage reads pageNumber and pageSize from the query string,
// applying the platform defaults for missing or out-of-range values.
func parsePage(c *gin.Context) (pageNumber, pageSize int) {
	pageNumber, _ = strconv.Atoi(c.Query("pageNumber"))
	pageSize, _ = strconv.Atoi(c.Query("pageSize"))

	q := domain.PageQuery{PageNumber: pageNumber, PageSize: pageSize}.Normalize()
	return q.PageNumber, q.PageSize
}

// paginate applies limit/offset for the given page to a GORM query.
func paginate(pageNumber, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((pageNumber - 1) * pageSize).Limit(pageSize)
	}
}
