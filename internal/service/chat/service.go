// Package chat is the client for chat groups and messages.
package chat

import (
	"context"
	"sync/atomic"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/rest"
)

// Service defines the chat operations.
type Service interface {
	Groups(ctx context.Context) rest.Result[[]domain.ChatGroup]
	Group(ctx context.Context, id string) rest.Result[domain.ChatGroup]
	CreateGroup(ctx context.Context, g domain.ChatGroup) rest.Result[domain.ChatGroup]
	DeleteGroup(ctx context.Context, id string) rest.Result[rest.Empty]

	Messages(ctx context.Context, q domain.MessageQuery) rest.Paged[domain.ChatMessage]
	Send(ctx context.Context, m domain.ChatMessage) rest.Result[domain.ChatMessage]
	MarkRead(ctx context.Context, r domain.ReadReceipt) rest.Result[rest.Empty]

	// UploadAttachments fans the batch out by attachment kind and
	// awaits joint completion. Only one batch may run at a time.
	UploadAttachments(ctx context.Context, groupID string, batch []Attachment, progress rest.ProgressFunc) rest.Result[[]domain.Media]
}

type service struct {
	provider *rest.Provider

	// uploading guards against overlapping attachment batches.
	uploading atomic.Bool
}

// NewService creates a chat Service backed by the given provider.
func NewService(p *rest.Provider) Service {
	return &service{provider: p}
}

// Groups retrieves the chat groups the caller belongs to.
func (s *service) Groups(ctx context.Context) rest.Result[[]domain.ChatGroup] {
	return rest.Get[[]domain.ChatGroup](ctx, s.provider, "chat/groups/all")
}

// Group retrieves a single chat group by id.
func (s *service) Group(ctx context.Context, id string) rest.Result[domain.ChatGroup] {
	return rest.Get[domain.ChatGroup](ctx, s.provider, rest.JoinPath("chat/groups", id))
}

// CreateGroup adds a new chat group. Platform convention: create is a PUT.
func (s *service) CreateGroup(ctx context.Context, g domain.ChatGroup) rest.Result[domain.ChatGroup] {
	return rest.Put[domain.ChatGroup, domain.ChatGroup](ctx, s.provider, "chat/groups", g)
}

// DeleteGroup removes a chat group by id.
func (s *service) DeleteGroup(ctx context.Context, id string) rest.Result[rest.Empty] {
	return s.provider.Delete(ctx, "chat/groups", id)
}

// Messages retrieves one page of messages matching the query.
func (s *service) Messages(ctx context.Context, q domain.MessageQuery) rest.Paged[domain.ChatMessage] {
	q.PageQuery = q.Normalize()
	return rest.GetPaged[domain.ChatMessage](ctx, s.provider, "chat/messages", q)
}

// Send posts a new message. Platform convention: create is a PUT.
func (s *service) Send(ctx context.Context, m domain.ChatMessage) rest.Result[domain.ChatMessage] {
	return rest.Put[domain.ChatMessage, domain.ChatMessage](ctx, s.provider, "chat/messages", m)
}

// MarkRead records a read receipt for a message.
func (s *service) MarkRead(ctx context.Context, r domain.ReadReceipt) rest.Result[rest.Empty] {
	return rest.Post[domain.ReadReceipt, rest.Empty](ctx, s.provider, "chat/messages/read", r)
}
