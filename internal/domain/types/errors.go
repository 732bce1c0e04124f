package types

import "errors"

var (
	ErrInvalidPhase        = errors.New("operation not allowed in current phase")
	ErrSelectionIncomplete = errors.New("exercise and duration must be selected")
	ErrUnknownExercise     = errors.New("unknown exercise")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrNoTrainer           = errors.New("no trainer selected")

	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
	ErrEmptyCatalog    = errors.New("trainer catalog is empty")
	ErrTrainerNotFound = errors.New("trainer not found")
)
