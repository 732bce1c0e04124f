package models

import (
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/google/uuid"
)

type ChatMessage struct {
	ID        uuid.UUID        `json:"id"`
	Sender    types.SenderRole `json:"sender"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

// Chat is the chat widget state shared by every phase.
// History is append-only.
type Chat struct {
	Visible bool
	Draft   string
	History []ChatMessage
}

// Clone returns a copy whose History does not alias the original.
func (c Chat) Clone() Chat {
	out := c
	if c.History != nil {
		out.History = make([]ChatMessage, len(c.History))
		copy(out.History, c.History)
	}
	return out
}
