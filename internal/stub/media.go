package stub

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

// Media kinds accepted by the upload endpoints.
const (
	mediaKindImage    = "images"
	mediaKindDocument = "documents"
	mediaKindVideo    = "videos"
)

// mediaRecord is the stored form of an upload. File bytes are not
// retained; the stub only keeps the metadata the client reads back.
type mediaRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	OwnerType   string `gorm:"size:20;index:idx_media_owner"`
	OwnerID     string `gorm:"size:36;index:idx_media_owner"`
	Kind        string `gorm:"size:20"`
	FileName    string `gorm:"size:255"`
	ContentType string `gorm:"size:100"`
	SizeBytes   int64
}

func (mediaRecord) TableName() string { return "media" }

func (m mediaRecord) toMedia() domain.Media {
	return domain.Media{
		ID:          m.ID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		URL:         "/media/" + m.ID,
		SizeBytes:   m.SizeBytes,
	}
}

// storeUploads persists metadata for every file in the multipart form
// and returns the created media. The form may carry the files under
// any field names; all file parts are accepted.
func storeUploads(db *gorm.DB, form *multipart.Form, ownerType, ownerID, kind string) ([]domain.Media, error) {
	var files []*multipart.FileHeader
	for _, headers := range form.File {
		files = append(files, headers...)
	}
	if len(files) == 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "no files in upload", nil)
	}

	media := make([]domain.Media, 0, len(files))
	for _, fh := range files {
		rec := mediaRecord{
			ID:          uuid.NewString(),
			OwnerType:   ownerType,
			OwnerID:     ownerID,
			Kind:        kind,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			SizeBytes:   fh.Size,
		}
		if err := db.Create(&rec).Error; err != nil {
			return nil, mapError(err)
		}
		media = append(media, rec.toMedia())
	}
	return media, nil
}

// handleUpload is the shared multipart endpoint body: parse the form,
// store the metadata, answer with the created media. Single-file
// owners (lodging images and videos) get the bare Media object back;
// batch owners get the slice.
func (s *Server) handleUpload(c *gin.Context, ownerType, ownerID, kind string, single bool) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "malformed multipart form: "+err.Error())
		return
	}

	media, err := storeUploads(s.db.WithContext(c.Request.Context()), form, ownerType, ownerID, kind)
	if err != nil {
		respondError(c, err)
		return
	}

	if single {
		ok(c, media[0])
		return
	}
	ok(c, media)
}

// deleteMedia removes one media record scoped to its owner.
func (s *Server) deleteMedia(c *gin.Context, ownerType, ownerID, kind, mediaID string) {
	result := s.db.WithContext(c.Request.Context()).
		Where("owner_type = ? AND owner_id = ? AND kind = ? AND id = ?", ownerType, ownerID, kind, mediaID).
		Delete(&mediaRecord{})
	if result.Error != nil {
		respondError(c, mapError(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, domain.ErrNotFound)
		return
	}
	ok(c, nil)
}

// mediaFor loads the media of one kind attached to an owner.
func mediaFor(db *gorm.DB, ownerType, ownerID, kind string) ([]domain.Media, error) {
	var records []mediaRecord
	if err := db.Where("owner_type = ? AND owner_id = ? AND kind = ?", ownerType, ownerID, kind).
		Find(&records).Error; err != nil {
		return nil, mapError(err)
	}
	media := make([]domain.Media, 0, len(records))
	for _, rec := range records {
		media = append(media, rec.toMedia())
	}
	return media, nil
}
