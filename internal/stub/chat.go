package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

const ownerChatGroup = "chat_group"

// chatGroupRecord is the stored form of a chat group. Member ids are
// flattened to a comma-separated list; the stub has no need to query
// by member.
type chatGroupRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:200"`
	MemberIDs string `gorm:"size:2000"`
	CreatedAt time.Time
}

func (chatGroupRecord) TableName() string { return "chat_groups" }

func (g chatGroupRecord) toGroup() domain.ChatGroup {
	members := []string{}
	if g.MemberIDs != "" {
		members = strings.Split(g.MemberIDs, ",")
	}
	return domain.ChatGroup{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: members,
		CreatedAt: g.CreatedAt,
	}
}

// chatMessageRecord is the stored form of a chat message.
type chatMessageRecord struct {
	ID       string `gorm:"primaryKey;size:36"`
	GroupID  string `gorm:"size:36;index"`
	SenderID string `gorm:"size:36"`
	Body     string `gorm:"size:4000"`
	SentAt   time.Time
	ReadBy   string `gorm:"size:2000"`
}

func (chatMessageRecord) TableName() string { return "chat_messages" }

func (m chatMessageRecord) toMessage() domain.ChatMessage {
	readBy := []string{}
	if m.ReadBy != "" {
		readBy = strings.Split(m.ReadBy, ",")
	}
	return domain.ChatMessage{
		ID:       m.ID,
		GroupID:  m.GroupID,
		SenderID: m.SenderID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadBy:   readBy,
	}
}

// ListChatGroups handles GET /api/chat/groups/all.
func (s *Server) ListChatGroups(c *gin.Context) {
	var records []chatGroupRecord
	if err := s.db.WithContext(c.Request.Context()).Find(&records).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	groups := make([]domain.ChatGroup, 0, len(records))
	for _, rec := range records {
		groups = append(groups, rec.toGroup())
	}
	ok(c, groups)
}

// GetChatGroup handles GET /api/chat/groups/:id.
func (s *Server) GetChatGroup(c *gin.Context) {
	var record chatGroupRecord
	if err := s.db.WithContext(c.Request.Context()).
		First(&record, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, record.toGroup())
}

// CreateChatGroup handles PUT /api/chat/groups. Platform convention: create is a PUT.
func (s *Server) CreateChatGroup(c *gin.Context) {
	var group domain.ChatGroup
	if !bindAndValidate(c, &group) {
		return
	}
	if group.Name == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	record := chatGroupRecord{
		ID:        uuid.NewString(),
		Name:      group.Name,
		MemberIDs: strings.Join(group.MemberIDs, ","),
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	created(c, record.toGroup())
}

// DeleteChatGroup handles DELETE /api/chat/groups/:id.
func (s *Server) DeleteChatGroup(c *gin.Context) {
	result := s.db.WithContext(c.Request.Context()).
		Delete(&chatGroupRecord{}, "id = ?", c.Param("id"))
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

// PagedChatMessages handles GET /api/chat/messages with a groupId filter.
func (s *Server) PagedChatMessages(c *gin.Context) {
	pageNumber, pageSize := parsePage(c)

	base := s.db.WithContext(c.Request.Context()).Model(&chatMessageRecord{})
	if groupID := c.Query("groupId"); groupID != "" {
		base = base.Where("group_id = ?", groupID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	var records []chatMessageRecord
	if err := base.Order("sent_at DESC").
		Scopes(paginate(pageNumber, pageSize)).Find(&records).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	messages := make([]domain.ChatMessage, 0, len(records))
	for _, rec := range records {
		messages = append(messages, rec.toMessage())
	}
	paged(c, messages, total, pageNumber, pageSize)
}

// SendChatMessage handles PUT /api/chat/messages. Platform convention:
// create is a PUT. Sending raises a chat notification.
func (s *Server) SendChatMessage(c *gin.Context) {
	var msg domain.ChatMessage
	if !bindAndValidate(c, &msg) {
		return
	}
	if msg.GroupID == "" || msg.Body == "" {
		fail(c, http.StatusBadRequest, "groupId and body are required")
		return
	}

	record := chatMessageRecord{
		ID:       uuid.NewString(),
		GroupID:  msg.GroupID,
		SenderID: msg.SenderID,
		Body:     msg.Body,
		SentAt:   time.Now(),
	}

	// Group lookup and message insert are one unit: the message must
	// not land if the group vanished between the two statements.
	var group chatGroupRecord
	err := withTx(s.db.WithContext(c.Request.Context()), func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", msg.GroupID).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		respondError(c, mapError(err))
		return
	}

	s.notify(c, domain.Notification{
		Category: domain.NotifyChatMessage,
		Title:    "New message in " + group.Name,
		Body:     msg.Body,
	})

	created(c, record.toMessage())
}

// MarkChatMessageRead handles POST /api/chat/messages/read.
func (s *Server) MarkChatMessageRead(c *gin.Context) {
	var receipt domain.ReadReceipt
	if !bindAndValidate(c, &receipt) {
		return
	}
	if receipt.MessageID == "" || receipt.MemberID == "" {
		fail(c, http.StatusBadRequest, "messageId and memberId are required")
		return
	}

	db := s.db.WithContext(c.Request.Context())
	var record chatMessageRecord
	if err := db.First(&record, "id = ?", receipt.MessageID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	readBy := []string{}
	if record.ReadBy != "" {
		readBy = strings.Split(record.ReadBy, ",")
	}
	for _, member := range readBy {
		if member == receipt.MemberID {
			ok(c, nil) // repeat receipts are a no-op
			return
		}
	}
	record.ReadBy = strings.Join(append(readBy, receipt.MemberID), ",")

	if err := db.Save(&record).Error; err != nil {
		respondError(c, mapError(err))
		return
	}
	ok(c, nil)
}

// UploadChatImages handles POST /api/chat/groups/:id/images.
func (s *Server) UploadChatImages(c *gin.Context) {
	s.uploadChatMedia(c, mediaKindImage)
}

// UploadChatDocuments handles POST /api/chat/groups/:id/documents.
func (s *Server) UploadChatDocuments(c *gin.Context) {
	s.uploadChatMedia(c, mediaKindDocument)
}

// UploadChatVideos handles POST /api/chat/groups/:id/videos.
func (s *Server) UploadChatVideos(c *gin.Context) {
	s.uploadChatMedia(c, mediaKindVideo)
}

func (s *Server) uploadChatMedia(c *gin.Context, kind string) {
	groupID := c.Param("id")

	var group chatGroupRecord
	if err := s.db.WithContext(c.Request.Context()).
		First(&group, "id = ?", groupID).Error; err != nil {
		respondError(c, mapError(err))
		return
	}

	s.handleUpload(c, ownerChatGroup, groupID, kind, false)
}
