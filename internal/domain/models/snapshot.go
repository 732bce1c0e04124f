package models

import (
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/google/uuid"
)

// Snapshot is the flat read model of a booking session
type Snapshot struct {
	SessionID        uuid.UUID       `json:"session_id"`
	Phase            types.Phase     `json:"phase"`
	Exercise         *types.Exercise `json:"exercise,omitempty"`
	DurationMinutes  int             `json:"duration_minutes"`
	Trainer          *Trainer        `json:"trainer,omitempty"`
	ArrivalProgress  float64         `json:"arrival_progress"`
	EstimatedMinutes float64         `json:"estimated_minutes"`
	Arrived          bool            `json:"arrived"`

	ChatVisible bool          `json:"chat_visible"`
	ChatDraft   string        `json:"chat_draft"`
	ChatHistory []ChatMessage `json:"chat_history"`

	// Display values
	EstimatedPrice   int    `json:"estimated_price"`
	ProgressText     string `json:"progress_text"`
	DisplayedMinutes int    `json:"displayed_minutes"`

	UpdatedAt time.Time `json:"updated_at"`
}
