package lodging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// recorder captures every request the service issues and answers each
// with a succeeded envelope echoing back a fixed payload.
type recorder struct {
	mu    sync.Mutex
	calls []string // "METHOD /path"
}

func (rec *recorder) server(t *testing.T, data any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.calls = append(rec.calls, r.Method+" "+r.URL.Path)
		rec.mu.Unlock()
		if err := json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": data}); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func (rec *recorder) single(t *testing.T) string {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly 1 platform call, got %d: %v", len(rec.calls), rec.calls)
	}
	return rec.calls[0]
}

func TestCreate_IssuesOnePut(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, domain.Lodging{Name: "cabin"})
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	res := svc.Create(context.Background(), domain.Lodging{Name: "cabin"})

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.single(t); got != "PUT /lodgings" {
		t.Errorf("expected PUT /lodgings, got %q", got)
	}
}

func TestUpdate_IssuesOnePost(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, domain.Lodging{})
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	if err := svc.Update(context.Background(), domain.Lodging{BaseModel: domain.BaseModel{ID: 5}}).Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.single(t); got != "POST /lodgings" {
		t.Errorf("expected POST /lodgings, got %q", got)
	}
}

func TestReadPaths(t *testing.T) {
	tests := []struct {
		name string
		call func(svc Service) error
		want string
	}{
		{"list", func(svc Service) error { return svc.List(context.Background()).Err() }, "GET /lodgings/all"},
		{"get", func(svc Service) error { return svc.Get(context.Background(), 7).Err() }, "GET /lodgings/7"},
		{"amenities", func(svc Service) error { return svc.Amenities(context.Background()).Err() }, "GET /amenities/all"},
		{"child amenities", func(svc Service) error { return svc.ChildAmenities(context.Background(), 7).Err() }, "GET /amenities/children/7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			srv := rec.server(t, nil)
			defer srv.Close()

			if err := tt.call(NewService(rest.NewProvider(srv.URL))); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rec.single(t); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDelete_TargetsID(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, nil)
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	if err := svc.Delete(context.Background(), 42).Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.single(t); got != "DELETE /lodgings/42" {
		t.Errorf("expected DELETE /lodgings/42, got %q", got)
	}
}

func TestAmenityAttachDetach(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, nil)
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	if err := svc.AddAmenity(context.Background(), 7, 3).Err(); err != nil {
		t.Fatalf("add amenity: %v", err)
	}
	if err := svc.RemoveAmenity(context.Background(), 7, 3).Err(); err != nil {
		t.Fatalf("remove amenity: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	want := []string{"POST /lodgings/7/amenities/3", "DELETE /lodgings/7/amenities/3"}
	if len(rec.calls) != len(want) || rec.calls[0] != want[0] || rec.calls[1] != want[1] {
		t.Errorf("expected calls %v, got %v", want, rec.calls)
	}
}

func TestAddImage_UploadsToImagesRoute(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, domain.Media{ID: "m1"})
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	file := rest.UploadFile{Field: "files", Name: "front.jpg", Content: strings.NewReader("jpeg"), Size: 4}
	res := svc.AddImage(context.Background(), 7, file, nil)

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Data.ID != "m1" {
		t.Errorf("expected media id m1, got %q", res.Data.ID)
	}
	if got := rec.single(t); got != "POST /lodgings/7/images" {
		t.Errorf("expected POST /lodgings/7/images, got %q", got)
	}
}

func TestRemoveVideo_DeletesByMediaID(t *testing.T) {
	rec := &recorder{}
	srv := rec.server(t, nil)
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	ref := domain.MediaRef{EntityID: 7, MediaID: "vid-1"}
	if err := svc.RemoveVideo(context.Background(), ref).Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.single(t); got != "DELETE /lodgings/7/videos/vid-1" {
		t.Errorf("expected DELETE /lodgings/7/videos/vid-1, got %q", got)
	}
}

func TestPaged_NormalizesPageQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"succeeded": true, "data": []domain.Lodging{}, "totalCount": 0, "pageNumber": 1, "pageSize": 20,
		})
	}))
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	res := svc.Paged(context.Background(), domain.LodgingQuery{})

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "pageNumber=1&pageSize=20" {
		t.Errorf("expected normalized page query, got %q", gotQuery)
	}
}
