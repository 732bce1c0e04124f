package booking

import "time"

// Settings holds the timing and pricing constants of the simulation.
type Settings struct {
	MatchDelay    time.Duration
	TickInterval  time.Duration
	GreetingDelay time.Duration
	ReplyDelay    time.Duration

	ProgressStep    float64
	EstimateStep    float64
	InitialEstimate float64

	DefaultDuration int
	MinDuration     int
	MaxDuration     int
	DurationStep    int
	QuickPicks      []int

	ReferenceRate float64
}

func DefaultSettings() Settings {
	return Settings{
		MatchDelay:    3000 * time.Millisecond,
		TickInterval:  100 * time.Millisecond,
		GreetingDelay: 1000 * time.Millisecond,
		ReplyDelay:    1500 * time.Millisecond,

		ProgressStep:    2,
		EstimateStep:    0.1,
		InitialEstimate: 5,

		DefaultDuration: 60,
		MinDuration:     15,
		MaxDuration:     120,
		DurationStep:    15,
		QuickPicks:      []int{15, 30, 45, 60, 90},

		ReferenceRate: 70,
	}
}
