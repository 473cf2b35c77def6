package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

func attachment(kind AttachmentKind, name, content string) Attachment {
	return Attachment{
		Kind: kind,
		File: rest.UploadFile{
			Field:   "files",
			Name:    name,
			Content: strings.NewReader(content),
			Size:    int64(len(content)),
		},
	}
}

func TestUploadAttachments_FansOutPerKind(t *testing.T) {
	var mu sync.Mutex
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()

		kind := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"succeeded": true,
			"data":      []domain.Media{{ID: kind + "-1"}},
		})
	}))
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	batch := []Attachment{
		attachment(KindImage, "a.jpg", "img"),
		attachment(KindDocument, "b.pdf", "doc"),
		attachment(KindVideo, "c.mp4", "vid"),
	}
	res := svc.UploadAttachments(context.Background(), "g1", batch, nil)

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	sort.Strings(paths)
	mu.Unlock()
	want := []string{
		"POST /chat/groups/g1/documents",
		"POST /chat/groups/g1/images",
		"POST /chat/groups/g1/videos",
	}
	if len(paths) != 3 || paths[0] != want[0] || paths[1] != want[1] || paths[2] != want[2] {
		t.Errorf("expected one upload per kind %v, got %v", want, paths)
	}

	if len(res.Data) != 3 {
		t.Fatalf("expected media merged from all kinds, got %v", res.Data)
	}
	ids := map[string]bool{}
	for _, m := range res.Data {
		ids[m.ID] = true
	}
	for _, id := range []string{"images-1", "documents-1", "videos-1"} {
		if !ids[id] {
			t.Errorf("missing media %q in %v", id, res.Data)
		}
	}
}

func TestUploadAttachments_SingleKindHitsOneRoute(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": []domain.Media{{ID: "m1"}, {ID: "m2"}}})
	}))
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	batch := []Attachment{
		attachment(KindImage, "a.jpg", "aaa"),
		attachment(KindImage, "b.jpg", "bbb"),
	}
	res := svc.UploadAttachments(context.Background(), "g1", batch, nil)

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 1 || paths[0] != "/chat/groups/g1/images" {
		t.Errorf("expected one call to the images route, got %v", paths)
	}
}

func TestUploadAttachments_RejectsOverlappingBatch(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": []domain.Media{}})
	}))
	defer srv.Close()
	defer close(release)

	svc := NewService(rest.NewProvider(srv.URL))

	firstDone := make(chan rest.Result[[]domain.Media], 1)
	go func() {
		firstDone <- svc.UploadAttachments(context.Background(), "g1",
			[]Attachment{attachment(KindImage, "a.jpg", "img")}, nil)
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first batch never reached the platform")
	}

	second := svc.UploadAttachments(context.Background(), "g1",
		[]Attachment{attachment(KindDocument, "b.pdf", "doc")}, nil)
	if err := second.Err(); err == nil {
		t.Fatal("expected the second batch to be rejected")
	} else if !domain.IsValidation(err) {
		t.Errorf("expected validation failure, got %v", err)
	}
	if len(second.Messages) == 0 || !strings.Contains(second.Messages[0], "already in progress") {
		t.Errorf("unexpected messages %v", second.Messages)
	}

	release <- struct{}{}
	res := <-firstDone
	if err := res.Err(); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}

	// The flag clears once the batch finishes.
	srv2calls := 0
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv2calls++
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": []domain.Media{}})
	}))
	defer srv2.Close()
	svc2 := NewService(rest.NewProvider(srv2.URL))
	if err := svc2.UploadAttachments(context.Background(), "g1",
		[]Attachment{attachment(KindImage, "c.jpg", "img")}, nil).Err(); err != nil {
		t.Fatalf("follow-up batch failed: %v", err)
	}
	if srv2calls != 1 {
		t.Errorf("expected 1 follow-up call, got %d", srv2calls)
	}
}

func TestUploadAttachments_ProgressCoversWholeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": []domain.Media{}})
	}))
	defer srv.Close()

	var mu sync.Mutex
	var maxSent, lastTotal int64

	svc := NewService(rest.NewProvider(srv.URL))
	batch := []Attachment{
		attachment(KindImage, "a.jpg", strings.Repeat("a", 100)),
		attachment(KindDocument, "b.pdf", strings.Repeat("b", 200)),
	}
	res := svc.UploadAttachments(context.Background(), "g1", batch, func(sent, total int64) {
		mu.Lock()
		if sent > maxSent {
			maxSent = sent
		}
		lastTotal = total
		mu.Unlock()
	})

	if err := res.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if maxSent != 300 {
		t.Errorf("expected 300 bytes reported across the batch, got %d", maxSent)
	}
	if lastTotal != 300 {
		t.Errorf("expected batch total 300, got %d", lastTotal)
	}
}

func TestUploadAttachments_ValidatesInput(t *testing.T) {
	svc := NewService(rest.NewProvider("http://unused.invalid"))

	empty := svc.UploadAttachments(context.Background(), "g1", nil, nil)
	if !domain.IsValidation(empty.Err()) {
		t.Errorf("expected validation failure for empty batch, got %v", empty.Err())
	}

	unknown := svc.UploadAttachments(context.Background(), "g1",
		[]Attachment{attachment(AttachmentKind("archives"), "a.zip", "zip")}, nil)
	if !domain.IsValidation(unknown.Err()) {
		t.Errorf("expected validation failure for unknown kind, got %v", unknown.Err())
	}
}

func TestUploadAttachments_PropagatesUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/videos") {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"succeeded": false,
				"messages":  []string{"video too large"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"succeeded": true, "data": []domain.Media{}})
	}))
	defer srv.Close()

	svc := NewService(rest.NewProvider(srv.URL))
	batch := []Attachment{
		attachment(KindImage, "a.jpg", "img"),
		attachment(KindVideo, "c.mp4", "vid"),
	}
	res := svc.UploadAttachments(context.Background(), "g1", batch, nil)

	if err := res.Err(); err == nil {
		t.Fatal("expected failure")
	} else if !domain.IsValidation(err) {
		t.Errorf("expected the video rejection to surface, got %v", err)
	}
}
