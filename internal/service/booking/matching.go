package booking

import (
	"context"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
)

func (c *Controller) scheduleMatch() {
	c.schedule(c.cfg.MatchDelay, types.ActionTrainerMatched, c.completeMatch)
}

// completeMatch picks one trainer uniformly at random and moves searching to found.
func (c *Controller) completeMatch(ctx context.Context) {
	searching, ok := c.state.(models.Searching)
	if !ok {
		return
	}

	trainers := c.pool.Trainers()
	if len(trainers) == 0 {
		c.l.Error(ctx, "no trainer to match", types.ErrEmptyCatalog)
		return
	}
	trainer := trainers[c.rnd.IntN(len(trainers))]

	c.enter(models.Found{
		Request: searching.Request,
		Trainer: trainer,
	})
	c.emit(types.EventTrainerMatched, nil)
	c.l.Info(wrap.WithTrainerID(ctx, trainer.ID), "trainer matched", "trainer_name", trainer.Name)
}
