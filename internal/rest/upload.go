package rest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync/atomic"

	"github.com/staykit/staykit-go/internal/domain"
)

// UploadFile is one file in a multipart upload.
type UploadFile struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
	// Size is the content length in bytes, used only for progress
	// reporting. Zero is allowed; progress then reports an unknown total.
	Size int64
}

// ProgressFunc receives byte-level upload progress. total is zero when
// any file size is unknown.
type ProgressFunc func(sent, total int64)

// Upload issues a multipart POST carrying the given files and form
// fields, reporting progress as file bytes are written to the wire.
// Like every provider call it folds all failures into the envelope.
func Upload[T any](ctx context.Context, p *Provider, path string, files []UploadFile, fields map[string]string, progress ProgressFunc) Result[T] {
	if len(files) == 0 {
		return Fail[T](domain.CodeValidation, "no files to upload")
	}

	total := int64(0)
	for _, f := range files {
		if f.Size <= 0 {
			total = 0
			break
		}
		total += f.Size
	}

	var sent atomic.Int64
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// Build the request before starting the writer goroutine: if the
	// path is invalid, nothing ever reads the pipe and the goroutine
	// would block on it forever.
	req, fail := p.newRequest(ctx, http.MethodPost, path, "", pr, mw.FormDataContentType())
	if fail != nil {
		pr.Close()
		pw.Close()
		return Fail[T](fail.Code, fail.Message)
	}

	go func() {
		err := writeMultipart(mw, files, fields, func(n int64) {
			if progress != nil {
				progress(sent.Add(n), total)
			}
		})
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	status, body, fail := p.roundTrip(req)
	if fail != nil {
		return Fail[T](fail.Code, fail.Message)
	}

	return decode[T](status, body)
}

// writeMultipart streams fields and files into the multipart writer,
// invoking report with the byte count of every file chunk written.
func writeMultipart(mw *multipart.Writer, files []UploadFile, fields map[string]string, report func(n int64)) error {
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return err
		}
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, &countingReader{r: f.Content, report: report}); err != nil {
			return err
		}
	}
	return nil
}

// countingReader reports how many bytes pass through it.
type countingReader struct {
	r      io.Reader
	report func(n int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 && c.report != nil {
		c.report(int64(n))
	}
	return n, err
}
