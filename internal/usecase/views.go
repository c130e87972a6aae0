package usecase

import (
	"time"

	"parley/internal/domain/entity"
)

type ConversationView struct {
	*entity.Conversation
	Messages []MessageView `json:"messages,omitempty"`
}

type MessageView struct {
	*entity.Message
	Unread bool `json:"unread"`
}

type LastMessageView struct {
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	IsSystem   bool      `json:"is_system"`
	Unread     bool      `json:"unread"`
}

// ConversationSummary is the list-view projection: rendered entirely from
// the denormalized snapshot, without loading the thread.
type ConversationSummary struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name,omitempty"`
	Type        entity.ConversationType `json:"type"`
	Conversant  string                  `json:"conversant"`
	UnreadCount int                     `json:"unread_count"`
	LastMessage *LastMessageView        `json:"last_message,omitempty"`
}
