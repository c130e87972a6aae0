package usecase

// Caller identifies the acting participant for one request. It is threaded
// explicitly into every operation; there is no ambient request state.
type Caller struct {
	ParticipantID string
	Locale        string
	Timezone      string
}
