package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staykit/staykit-go/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Provider performs the actual platform calls and translates every
// outcome, including transport failures, into the uniform result
// envelope. It never returns a Go error for an ordinary HTTP failure.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	token      func() string
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithToken sets a bearer token source attached to every request.
// The source is consulted per call, so rotated tokens take effect
// without rebuilding the provider.
func WithToken(source func() string) Option {
	return func(p *Provider) { p.token = source }
}

// WithStaticToken sets a fixed bearer token.
func WithStaticToken(token string) Option {
	return WithToken(func() string { return token })
}

// WithLogger sets the logger used for outbound call logging.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProvider creates a Provider for the given platform base URL.
func NewProvider(baseURL string, opts ...Option) *Provider {
	p := &Provider{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BaseURL returns the configured platform base URL.
func (p *Provider) BaseURL() string { return p.baseURL }

// Get issues a GET for a single resource.
func Get[T any](ctx context.Context, p *Provider, path string) Result[T] {
	return call[T](ctx, p, http.MethodGet, path, "", nil)
}

// GetWith issues a GET with query parameters projected from params
// via QueryString.
func GetWith[T any](ctx context.Context, p *Provider, path string, params any) Result[T] {
	rawQuery, err := QueryString(params)
	if err != nil {
		return Fail[T](domain.CodeValidation, "encode query: "+err.Error())
	}
	return call[T](ctx, p, http.MethodGet, path, rawQuery, nil)
}

// GetPaged issues a GET for a paged listing. params is projected onto
// the query string via QueryString.
func GetPaged[T any](ctx context.Context, p *Provider, path string, params any) Paged[T] {
	rawQuery, err := QueryString(params)
	if err != nil {
		return FailPaged[T](domain.CodeValidation, "encode query: "+err.Error())
	}

	req, fail := p.newRequest(ctx, http.MethodGet, path, rawQuery, nil, "")
	if fail != nil {
		return FailPaged[T](fail.Code, fail.Message)
	}

	status, body, fail := p.roundTrip(req)
	if fail != nil {
		return FailPaged[T](fail.Code, fail.Message)
	}

	var out Paged[T]
	if err := json.Unmarshal(body, &out); err != nil {
		return FailPaged[T](domain.CodeInternal, "decode response: "+err.Error())
	}
	if !out.Succeeded {
		out.code = domain.CodeFromHTTPStatus(status)
		if len(out.Messages) == 0 {
			out.Messages = []string{http.StatusText(status)}
		}
	}
	return out
}

// Put issues a PUT with a JSON body. By platform convention PUT
// creates the resource; callers depend on this inversion, so it is
// preserved here literally.
func Put[TReq, TRes any](ctx context.Context, p *Provider, path string, body TReq) Result[TRes] {
	return callJSON[TReq, TRes](ctx, p, http.MethodPut, path, body)
}

// Post issues a POST with a JSON body. By platform convention POST
// updates an existing resource.
func Post[TReq, TRes any](ctx context.Context, p *Provider, path string, body TReq) Result[TRes] {
	return callJSON[TReq, TRes](ctx, p, http.MethodPost, path, body)
}

// Delete issues a DELETE for the resource identified by id under path.
// Deleting a missing id reports failure through the envelope, never an
// error, so the operation is safe to repeat.
func (p *Provider) Delete(ctx context.Context, path string, id string) Result[Empty] {
	return call[Empty](ctx, p, http.MethodDelete, JoinPath(path, id), "", nil)
}

func callJSON[TReq, TRes any](ctx context.Context, p *Provider, method, path string, body TReq) Result[TRes] {
	buf, err := json.Marshal(body)
	if err != nil {
		return Fail[TRes](domain.CodeValidation, "encode request: "+err.Error())
	}
	return call[TRes](ctx, p, method, path, "", bytes.NewReader(buf))
}

// call executes one request and decodes the uniform envelope.
func call[T any](ctx context.Context, p *Provider, method, path, rawQuery string, body io.Reader) Result[T] {
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}

	req, fail := p.newRequest(ctx, method, path, rawQuery, body, contentType)
	if fail != nil {
		return Fail[T](fail.Code, fail.Message)
	}

	status, respBody, fail := p.roundTrip(req)
	if fail != nil {
		return Fail[T](fail.Code, fail.Message)
	}

	return decode[T](status, respBody)
}

// decode parses the response body into the envelope, classifying
// failures by the HTTP status when the envelope itself carries none.
func decode[T any](status int, body []byte) Result[T] {
	var out Result[T]
	if err := json.Unmarshal(body, &out); err != nil {
		if status >= 400 {
			// Non-envelope error body (proxy page, gateway error).
			return Fail[T](domain.CodeFromHTTPStatus(status), http.StatusText(status))
		}
		return Fail[T](domain.CodeInternal, "decode response: "+err.Error())
	}
	if !out.Succeeded {
		out.code = domain.CodeFromHTTPStatus(status)
		if len(out.Messages) == 0 {
			out.Messages = []string{http.StatusText(status)}
		}
	}
	return out
}

// newRequest builds the outbound request with auth and tracing headers.
func (p *Provider) newRequest(ctx context.Context, method, relPath, rawQuery string, body io.Reader, contentType string) (*http.Request, *domain.AppError) {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := url.Parse(p.baseURL + "/" + strings.TrimLeft(relPath, "/"))
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "invalid request path: "+err.Error(), err)
	}
	if rawQuery != "" {
		u.RawQuery = rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "build request: "+err.Error(), err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if p.token != nil {
		if tok := p.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	return req, nil
}

// roundTrip executes the request, logs the call, and reads the body.
// Transport errors (DNS, refused connection, timeout, cancellation)
// come back as a network AppError for the caller to fold into a result.
func (p *Provider) roundTrip(req *http.Request) (int, []byte, *domain.AppError) {
	start := time.Now()

	resp, err := p.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		p.logger.LogAttrs(req.Context(), slog.LevelWarn, "platform call failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Duration("latency", latency),
			slog.String("error", err.Error()),
		)
		return 0, nil, domain.NewAppError(domain.CodeNetwork, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return 0, nil, domain.NewAppError(domain.CodeNetwork, "read response: "+err.Error(), err)
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	p.logger.LogAttrs(req.Context(), level, "platform call",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	return resp.StatusCode, body, nil
}
