package handler

import (
	"net/http"

	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
)

type TrainerLister interface {
	Trainers() []models.Trainer
}

type Catalog struct {
	trainers TrainerLister
	settings booking.Settings
	l        logger.Logger
}

func NewCatalog(trainers TrainerLister, settings booking.Settings, l logger.Logger) *Catalog {
	return &Catalog{
		trainers: trainers,
		settings: settings,
		l:        l,
	}
}

// ListTrainers godoc
// @Summary      List trainers
// @Description  Returns the candidate pool used for matching
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.Trainer
// @Router       /trainers [get]
func (h *Catalog) ListTrainers(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_trainers")

	trainers := h.trainers.Trainers()
	if err := writeJSON(w, http.StatusOK, envelope{"trainers": trainers, "count": len(trainers)}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

// ListExercises godoc
// @Summary      List exercises and duration options
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  dto.ExercisesResponse
// @Router       /exercises [get]
func (h *Catalog) ListExercises(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_exercises")

	resp := dto.ExercisesResponse{
		Exercises:       types.Exercises,
		QuickPicks:      h.settings.QuickPicks,
		MinDuration:     h.settings.MinDuration,
		MaxDuration:     h.settings.MaxDuration,
		DurationStep:    h.settings.DurationStep,
		DefaultDuration: h.settings.DefaultDuration,
	}

	if err := writeJSON(w, http.StatusOK, envelope{"catalog": resp}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}
