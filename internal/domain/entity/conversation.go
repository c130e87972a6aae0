package entity

import "time"

type ConversationType string

const (
	TypeDialogue   ConversationType = "dialogue"
	TypeConference ConversationType = "conference"
)

const (
	MinParticipants = 2
	MaxParticipants = 20
)

// LastMessage is a denormalized snapshot of the most recently appended
// message, kept so list views render without loading the thread. It is
// written only by the append path.
type LastMessage struct {
	Text        string    `json:"text" firestore:"text"`
	AuthorName  string    `json:"author_name" firestore:"authorName"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	IsSystem    bool      `json:"is_system" firestore:"isSystem"`
	SystemArgs  string    `json:"system_args,omitempty" firestore:"systemArgs,omitempty"`
	SubjectName string    `json:"subject_name,omitempty" firestore:"subjectName,omitempty"`
}

type Conversation struct {
	ID             string               `json:"id" firestore:"id"`
	Name           string               `json:"name,omitempty" firestore:"name,omitempty"`
	Type           ConversationType     `json:"type" firestore:"type"`
	Participants   []Participant        `json:"participants" firestore:"participants"`
	ParticipantIDs []string             `json:"-" firestore:"participantIds"`           // query index, mirrors Participants
	ParticipantKey string               `json:"-" firestore:"participantKey,omitempty"` // sorted pair key, dialogues only
	AdminID        string               `json:"admin_id,omitempty" firestore:"adminId,omitempty"`
	LastMessage    *LastMessage         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastReadOn     map[string]time.Time `json:"last_read_on" firestore:"lastReadOn"` // participant ID -> watermark
	CreatedAt      time.Time            `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time            `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(participantID string) bool {
	for _, p := range c.Participants {
		if p.ID == participantID {
			return true
		}
	}
	return false
}

// UnreadFor reports whether a message created at the given instant is
// unread for the participant. A participant with no watermark has the
// zero time, so everything is unread by default.
func (c *Conversation) UnreadFor(participantID string, createdAt time.Time) bool {
	return createdAt.After(c.LastReadOn[participantID])
}
