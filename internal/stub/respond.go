// Package stub is a self-contained rendition of the booking platform
// API, backed by GORM. It exists so the client layer can be exercised
// end to end without the real platform: every response carries the
// uniform result envelope the client decodes.
package stub

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/staykit/staykit-go/internal/domain"
)

// envelope is the uniform response body: {succeeded, data, messages}.
type envelope struct {
	Succeeded bool     `json:"succeeded"`
	Data      any      `json:"data"`
	Messages  []string `json:"messages"`
}

// pagedEnvelope extends the envelope with pagination metadata.
type pagedEnvelope struct {
	Succeeded  bool     `json:"succeeded"`
	Data       any      `json:"data"`
	Messages   []string `json:"messages"`
	TotalCount int64    `json:"totalCount"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
}

// ok sends a 200 envelope with the given data.
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Succeeded: true, Data: data, Messages: []string{}})
}

// created sends a 201 envelope with the given data.
func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Succeeded: true, Data: data, Messages: []string{}})
}

// paged sends a 200 paged envelope.
func paged(c *gin.Context, items any, total int64, pageNumber, pageSize int) {
	c.JSON(http.StatusOK, pagedEnvelope{
		Succeeded:  true,
		Data:       items,
		Messages:   []string{},
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
}

// fail sends a failed envelope with the given HTTP status and messages.
func fail(c *gin.Context, status int, messages ...string) {
	c.JSON(status, envelope{Succeeded: false, Data: nil, Messages: messages})
}

// respondError maps an error to an HTTP status and sends a failed
// envelope. *domain.AppError codes pick the status; anything else is a 500.
func respondError(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	msg := "internal error"
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	fail(c, status, msg)
}

// bindAndValidate binds the request body to obj and validates it.
// On failure it sends a failed envelope with one message per field
// error and returns false.
func bindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			fail(c, http.StatusBadRequest, err.Error())
			return false
		}

		jsonTags := buildJSONTagMap(obj)
		messages := make([]string, 0, len(ve))
		for _, fe := range ve {
			name := fe.Field()
			if tag, found := jsonTags[fe.StructField()]; found {
				name = tag
			} else {
				name = strings.ToLower(name)
			}
			msg := name + ": " + fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			messages = append(messages, msg)
		}

		fail(c, http.StatusBadRequest, messages...)
		return false
	}
	return true
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
// If obj is nil or not a struct (pointer), it returns an empty map.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if name := parseJSONTagName(tag); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
