package conversation

import (
	"time"

	"github.com/technosurge/leadflow/internal/leads"
)

// Status is the conversation state machine state.
type Status string

const (
	StatusOngoing              Status = "ONGOING"
	StatusAwaitingConfirmation Status = "AWAITING_FINAL_CONFIRMATION"
	StatusEnded                Status = "ENDED"
)

// Session holds one chat session's conversation memory and lead state. It is
// owned by the orchestrator; components receive the message history by value
// and never mutate it.
type Session struct {
	Messages []ChatMessage `json:"messages"`
	Lead     leads.Lead    `json:"lead"`
	Status   Status        `json:"status"`

	// ConfirmationAsked records that the "anything else?" prompt was already
	// emitted, so the detector firing again cannot re-enter the confirmation
	// state.
	ConfirmationAsked bool `json:"confirmation_asked"`

	LeadSaved bool      `json:"lead_saved"`
	EmailSent bool      `json:"email_sent"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh session with nothing captured.
func NewSession() *Session {
	return &Session{
		Lead:      leads.New(),
		Status:    StatusOngoing,
		UpdatedAt: time.Now().UTC(),
	}
}

// Append adds one turn to the conversation memory.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, ChatMessage{Role: role, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// Ended reports whether the session reached the terminal state.
func (s *Session) Ended() bool {
	return s.Status == StatusEnded
}
