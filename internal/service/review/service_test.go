package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// failingTransport fails the test if any request goes out.
type failingTransport struct {
	t *testing.T
}

func (ft failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ft.t.Errorf("unexpected network call: %s %s", r.Method, r.URL)
	return nil, http.ErrUseLastResponse
}

func offlineService(t *testing.T) Service {
	t.Helper()
	client := &http.Client{Transport: failingTransport{t: t}}
	return NewService(rest.NewProvider("http://unused.invalid", rest.WithHTTPClient(client)))
}

func TestMutations_FailWithoutTouchingNetwork(t *testing.T) {
	svc := offlineService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
	}{
		{"create", svc.Create(ctx, domain.Review{LodgingID: 1, Rating: 5}).Err()},
		{"update", svc.Update(ctx, domain.Review{BaseModel: domain.BaseModel{ID: 2}}).Err()},
		{"delete", svc.Delete(ctx, 2).Err()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected a NotImplemented failure, got success")
			}
			if !domain.IsNotImplemented(tt.err) {
				t.Errorf("expected NotImplemented, got %v", tt.err)
			}
		})
	}
}

func TestMutations_CarryDistinctMessages(t *testing.T) {
	svc := offlineService(t)
	ctx := context.Background()

	create := svc.Create(ctx, domain.Review{})
	update := svc.Update(ctx, domain.Review{})
	del := svc.Delete(ctx, 1)

	for name, messages := range map[string][]string{
		"create": create.Messages,
		"update": update.Messages,
		"delete": del.Messages,
	} {
		if len(messages) == 0 || messages[0] == "" {
			t.Errorf("%s: expected an explanatory message, got %v", name, messages)
		}
	}
	if create.Messages[0] == update.Messages[0] {
		t.Error("create and update should explain themselves differently")
	}
}

func TestReads_TargetReviewRoutes(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": nil})
	}))
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	if err := svc.ForLodging(context.Background(), 7).Err(); err != nil {
		t.Fatalf("for lodging: %v", err)
	}
	if err := svc.Get(context.Background(), 9).Err(); err != nil {
		t.Fatalf("get: %v", err)
	}

	want := []string{"GET /reviews/children/7", "GET /reviews/9"}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("expected calls %v, got %v", want, calls)
	}
}
