package entity

import "time"

// Participant is owned by the directory; the core treats a resolved
// participant as an immutable value for the duration of a request.
type Participant struct {
	ID          string    `json:"id" firestore:"id"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	Type        string    `json:"type,omitempty" firestore:"type,omitempty"`
	Period      string    `json:"period,omitempty" firestore:"period,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
