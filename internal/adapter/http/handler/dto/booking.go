package dto

import (
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/validator"
)

// SelectionRequest updates the pending selection. Fields are applied in
// order: exercise, duration, quick pick.
type SelectionRequest struct {
	Exercise        *string `json:"exercise,omitempty" validate:"omitempty,min=1"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	QuickPick       *int    `json:"quick_pick,omitempty" validate:"omitempty,gt=0"`
}

func (r *SelectionRequest) Validate(v *validator.Validator) {
	v.Struct(r)

	v.Check(r.Exercise != nil || r.DurationMinutes != nil || r.QuickPick != nil,
		"body", "one of exercise, duration_minutes or quick_pick must be provided")
	v.Check(r.DurationMinutes == nil || r.QuickPick == nil,
		"quick_pick", "must not be combined with duration_minutes")
}

func (r *SelectionRequest) ExerciseValue() types.Exercise {
	if r.Exercise == nil {
		return ""
	}
	return types.Exercise(*r.Exercise)
}

type DraftRequest struct {
	Text string `json:"text" validate:"max=1000"`
}

func (r *DraftRequest) Validate(v *validator.Validator) {
	v.Struct(r)
}

// MessageRequest sends Text, or the stored draft when Text is omitted.
type MessageRequest struct {
	Text *string `json:"text,omitempty" validate:"omitempty,max=1000"`
}

func (r *MessageRequest) Validate(v *validator.Validator) {
	v.Struct(r)
}

type ExercisesResponse struct {
	Exercises       []types.Exercise `json:"exercises"`
	QuickPicks      []int            `json:"quick_picks"`
	MinDuration     int              `json:"min_duration"`
	MaxDuration     int              `json:"max_duration"`
	DurationStep    int              `json:"duration_step"`
	DefaultDuration int              `json:"default_duration"`
}
