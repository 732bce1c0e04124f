package models

import "github.com/Temutjin2k/fitness-connect/internal/domain/types"

// State is the phase-specific part of a booking session. Each phase carries
// only the fields valid for it, so a trainer can only exist in Found and Arriving.
type State interface {
	Phase() types.Phase
}

// Request is what the user chose in the selecting phase
type Request struct {
	Exercise        types.Exercise
	DurationMinutes int
}

type Idle struct{}

type Selecting struct {
	// Exercise is empty until the user picks one
	Exercise        types.Exercise
	DurationMinutes int
}

type Searching struct {
	Request Request
}

type Found struct {
	Request Request
	Trainer Trainer
}

type Arriving struct {
	Request          Request
	Trainer          Trainer
	Ticks            int
	ArrivalProgress  float64
	EstimatedMinutes float64
}

func (Idle) Phase() types.Phase { return types.PhaseIdle }
func (Selecting) Phase() types.Phase { return types.PhaseSelecting }
func (Searching) Phase() types.Phase { return types.PhaseSearching }
func (Found) Phase() types.Phase { return types.PhaseFound }
func (Arriving) Phase() types.Phase { return types.PhaseArriving }

// Arrived reports the arrival sub-state of the arriving phase.
func (a Arriving) Arrived() bool {
	return a.ArrivalProgress >= 100
}

// Complete reports whether a search may be confirmed.
func (s Selecting) Complete() bool {
	return s.Exercise != "" && s.DurationMinutes > 0
}

// TrainerOf returns the trainer held by st, if any.
func TrainerOf(st State) (Trainer, bool) {
	switch s := st.(type) {
	case Found:
		return s.Trainer, true
	case Arriving:
		return s.Trainer, true
	default:
		return Trainer{}, false
	}
}
