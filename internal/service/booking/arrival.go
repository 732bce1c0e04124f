package booking

import (
	"context"
	"math"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
)

const maxProgress = 100

func (c *Controller) startArrival() {
	c.schedule(c.cfg.TickInterval, types.ActionArrivalTick, c.tick)
}

// tick advances progress and the countdown. Values are derived from the tick
// count, not accumulated, so repeated float steps cannot drift past the bounds.
func (c *Controller) tick(ctx context.Context) {
	arriving, ok := c.state.(models.Arriving)
	if !ok || arriving.Arrived() {
		return
	}

	arriving.Ticks++
	arriving.ArrivalProgress = math.Min(maxProgress, float64(arriving.Ticks)*c.cfg.ProgressStep)
	arriving.EstimatedMinutes = math.Max(0, c.cfg.InitialEstimate-float64(arriving.Ticks)*c.cfg.EstimateStep)
	if arriving.Arrived() {
		arriving.EstimatedMinutes = 0
	}
	c.state = arriving

	if arriving.Arrived() {
		c.emit(types.EventTrainerArrived, nil)
		c.l.Info(ctx, "trainer arrived", "ticks", arriving.Ticks)
		return
	}

	c.emit(types.EventArrivalProgress, nil)
	c.startArrival()
}
