package booking

import (
	"fmt"
	"math"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
)

// EstimatePrice returns round(duration/60 * hourly rate).
func EstimatePrice(durationMinutes int, pricePerHour float64) int {
	return int(math.Round(float64(durationMinutes) / 60 * pricePerHour))
}

// ProgressText renders progress rounded to an integer percentage.
func ProgressText(progress float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(progress)))
}

// DisplayedMinutes is the ceiling of the estimate, so a positive estimate never reads as 0.
func DisplayedMinutes(estimate float64) int {
	return int(math.Ceil(estimate))
}

func (c *Controller) snapshot() models.Snapshot {
	snap := models.Snapshot{
		SessionID:        c.id,
		Phase:            c.state.Phase(),
		DurationMinutes:  c.cfg.DefaultDuration,
		EstimatedMinutes: c.cfg.InitialEstimate,
		ChatVisible:      c.chat.Visible,
		ChatDraft:        c.chat.Draft,
		ChatHistory:      c.chat.Clone().History,
		UpdatedAt:        c.sched.Now(),
	}
	if snap.ChatHistory == nil {
		snap.ChatHistory = []models.ChatMessage{}
	}

	setRequest := func(ex models.Request) {
		exercise := ex.Exercise
		snap.Exercise = &exercise
		snap.DurationMinutes = ex.DurationMinutes
	}

	switch st := c.state.(type) {
	case models.Selecting:
		if st.Exercise != "" {
			exercise := st.Exercise
			snap.Exercise = &exercise
		}
		snap.DurationMinutes = st.DurationMinutes
	case models.Searching:
		setRequest(st.Request)
	case models.Found:
		setRequest(st.Request)
		trainer := st.Trainer
		snap.Trainer = &trainer
	case models.Arriving:
		setRequest(st.Request)
		trainer := st.Trainer
		snap.Trainer = &trainer
		snap.ArrivalProgress = st.ArrivalProgress
		snap.EstimatedMinutes = st.EstimatedMinutes
		snap.Arrived = st.Arrived()
	}

	rate := c.cfg.ReferenceRate
	if snap.Trainer != nil {
		rate = snap.Trainer.PricePerHour
	}
	snap.EstimatedPrice = EstimatePrice(snap.DurationMinutes, rate)
	snap.ProgressText = ProgressText(snap.ArrivalProgress)
	snap.DisplayedMinutes = DisplayedMinutes(snap.EstimatedMinutes)

	return snap
}
