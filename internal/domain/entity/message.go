package entity

import "time"

type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	AuthorID       string    `json:"author_id" firestore:"authorId"`
	AuthorName     string    `json:"author_name" firestore:"authorName"`
	Text           string    `json:"text" firestore:"text"` // literal text, or a catalog key for system messages
	IsSystem       bool      `json:"is_system" firestore:"isSystem"`
	SystemArgs     string    `json:"system_args,omitempty" firestore:"systemArgs,omitempty"` // JSON array of positional args
	SubjectID      string    `json:"subject_id,omitempty" firestore:"subjectId,omitempty"`
	SubjectName    string    `json:"subject_name,omitempty" firestore:"subjectName,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
