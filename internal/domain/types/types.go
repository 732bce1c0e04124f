package types

type ServiceMode string

// Booking Service - HTTP and WebSocket surface over in-memory booking sessions
// Simulate - runs one scripted booking episode in the terminal
const (
	BookingService ServiceMode = "booking-service"
	SimulateMode   ServiceMode = "simulate"
)

// Phase is the discrete stage of a booking session
type Phase string

func (p Phase) String() string {
	return string(p)
}

const (
	PhaseIdle      Phase = "idle"
	PhaseSelecting Phase = "selecting"
	PhaseSearching Phase = "searching"
	PhaseFound     Phase = "found"
	PhaseArriving  Phase = "arriving"
)

// Exercise is one of the bookable training types
type Exercise string

func (e Exercise) String() string {
	return string(e)
}

const (
	ExerciseStrength Exercise = "Musculação"
	ExerciseCardio   Exercise = "Cardio"
	ExerciseHIIT     Exercise = "HIIT"
	ExerciseYoga     Exercise = "Yoga"
	ExerciseCrossFit Exercise = "CrossFit"
	ExercisePilates  Exercise = "Pilates"
)

// Exercises lists the bookable exercises in display order
var Exercises = []Exercise{
	ExerciseStrength,
	ExerciseCardio,
	ExerciseHIIT,
	ExerciseYoga,
	ExerciseCrossFit,
	ExercisePilates,
}

// SenderRole identifies the author of a chat message
type SenderRole string

const (
	SenderUser    SenderRole = "user"
	SenderTrainer SenderRole = "trainer"
)
