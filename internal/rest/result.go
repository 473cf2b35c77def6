package rest

import "github.com/staykit/staykit-go/internal/domain"

// Result is the uniform envelope every platform endpoint returns.
// Succeeded implies Data is well-formed per the endpoint's contract;
// a failed result carries a zero Data and at least one message.
type Result[T any] struct {
	Succeeded bool     `json:"succeeded"`
	Data      T        `json:"data"`
	Messages  []string `json:"messages"`

	// code classifies a failed result (domain.Code* constants).
	// It is derived from the HTTP status or the transport error and
	// never travels on the wire.
	code int
}

// Paged is the envelope for paginated listings. The platform guarantees
// len(Items) <= PageSize and TotalCount >= len(Items).
type Paged[T any] struct {
	Succeeded  bool     `json:"succeeded"`
	Items      []T      `json:"data"`
	Messages   []string `json:"messages"`
	TotalCount int64    `json:"totalCount"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`

	code int
}

// Empty is the payload of endpoints that return no data.
type Empty struct{}

// Ok builds a succeeded result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{Succeeded: true, Data: data}
}

// Fail builds a failed result with the given error code and messages.
// A failed result always carries at least one message.
func Fail[T any](code int, messages ...string) Result[T] {
	if len(messages) == 0 {
		messages = []string{"request failed"}
	}
	return Result[T]{Messages: messages, code: code}
}

// FailPaged builds a failed paged result with the given error code and messages.
func FailPaged[T any](code int, messages ...string) Paged[T] {
	if len(messages) == 0 {
		messages = []string{"request failed"}
	}
	return Paged[T]{Messages: messages, code: code}
}

// ErrorCode returns the error classification of a failed result,
// or zero when the result succeeded.
func (r Result[T]) ErrorCode() int { return r.code }

// Err converts a failed result into a *domain.AppError. It returns nil
// when the result succeeded, so callers can branch with the usual
// errors helpers instead of inspecting the envelope.
func (r Result[T]) Err() error {
	if r.Succeeded {
		return nil
	}
	return domain.NewAppError(effectiveCode(r.code), firstMessage(r.Messages), nil)
}

// ErrorCode returns the error classification of a failed paged result,
// or zero when the result succeeded.
func (r Paged[T]) ErrorCode() int { return r.code }

// Err converts a failed paged result into a *domain.AppError.
func (r Paged[T]) Err() error {
	if r.Succeeded {
		return nil
	}
	return domain.NewAppError(effectiveCode(r.code), firstMessage(r.Messages), nil)
}

func effectiveCode(code int) int {
	if code == 0 {
		return domain.CodeInternal
	}
	return code
}

func firstMessage(messages []string) string {
	if len(messages) == 0 {
		return "request failed"
	}
	return messages[0]
}
