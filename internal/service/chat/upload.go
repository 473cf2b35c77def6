package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// AttachmentKind selects the upload route for an attachment.
type AttachmentKind string

// Attachment kinds the chat panel distinguishes.
const (
	KindImage    AttachmentKind = "images"
	KindDocument AttachmentKind = "documents"
	KindVideo    AttachmentKind = "videos"
)

// Attachment is one file queued for a chat upload batch.
type Attachment struct {
	Kind AttachmentKind
	File rest.UploadFile
}

// UploadAttachments uploads a batch of attachments for a group. Files
// are partitioned by kind and the three kinds are uploaded
// concurrently; the call returns once all of them finish. Order across
// kinds is not significant to the platform.
//
// A single busy flag rejects a second batch while one is in flight.
func (s *service) UploadAttachments(ctx context.Context, groupID string, batch []Attachment, progress rest.ProgressFunc) rest.Result[[]domain.Media] {
	if len(batch) == 0 {
		return rest.Fail[[]domain.Media](domain.CodeValidation, "no attachments to upload")
	}
	if !s.uploading.CompareAndSwap(false, true) {
		return rest.Fail[[]domain.Media](domain.CodeValidation, "an upload batch is already in progress")
	}
	defer s.uploading.Store(false)

	byKind := make(map[AttachmentKind][]rest.UploadFile)
	total := int64(0)
	for _, a := range batch {
		switch a.Kind {
		case KindImage, KindDocument, KindVideo:
			byKind[a.Kind] = append(byKind[a.Kind], a.File)
		default:
			return rest.Fail[[]domain.Media](domain.CodeValidation, "unknown attachment kind: "+string(a.Kind))
		}
		if a.File.Size <= 0 {
			total = -1
		}
		if total >= 0 {
			total += a.File.Size
		}
	}
	if total < 0 {
		total = 0
	}

	var (
		sent  atomic.Int64
		mu    sync.Mutex
		media []domain.Media
	)

	g, gctx := errgroup.WithContext(ctx)
	for kind, files := range byKind {
		path := rest.JoinPath("chat/groups", groupID, string(kind))
		files := files

		g.Go(func() error {
			res := rest.Upload[[]domain.Media](gctx, s.provider, path, files, nil, kindProgress(&sent, total, progress))
			if err := res.Err(); err != nil {
				return err
			}
			mu.Lock()
			media = append(media, res.Data...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return rest.Fail[[]domain.Media](appErr.Code, appErr.Message)
		}
		return rest.Fail[[]domain.Media](domain.CodeInternal, err.Error())
	}

	return rest.Ok(media)
}

// kindProgress folds a per-call progress stream into batch-wide
// progress. rest.Upload reports a call-local running total, so the
// delta since the previous callback is what feeds the shared counter.
func kindProgress(sent *atomic.Int64, total int64, progress rest.ProgressFunc) rest.ProgressFunc {
	if progress == nil {
		return nil
	}
	var mu sync.Mutex
	var prev int64
	return func(callSent, _ int64) {
		mu.Lock()
		delta := callSent - prev
		prev = callSent
		mu.Unlock()
		progress(sent.Add(delta), total)
	}
}
