package domain

import "time"

// ChatGroup represents a conversation between platform users.
type ChatGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"memberIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMessage is a single message inside a chat group.
type ChatMessage struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	SenderID    string    `json:"senderId"`
	Body        string    `json:"body"`
	Attachments []Media   `json:"attachments,omitempty"`
	SentAt      time.Time `json:"sentAt"`
	ReadBy      []string  `json:"readBy,omitempty"`
}

// ReadReceipt marks a message as read by a member.
type ReadReceipt struct {
	GroupID   string `json:"groupId"`
	MessageID string `json:"messageId"`
	MemberID  string `json:"memberId"`
}
