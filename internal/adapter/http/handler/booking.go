package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/validator"
	"github.com/google/uuid"
)

type SessionStore interface {
	Create(ctx context.Context) (*booking.Controller, error)
	Get(ctx context.Context, id uuid.UUID) (*booking.Controller, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type Booking struct {
	sessions SessionStore
	l        logger.Logger
}

func NewBooking(sessions SessionStore, l logger.Logger) *Booking {
	return &Booking{
		sessions: sessions,
		l:        l,
	}
}

// sessionOp is one controller operation driven by a request without a body
type sessionOp func(c *booking.Controller, ctx context.Context) (models.Snapshot, error)

// CreateSession godoc
// @Summary      Create booking session
// @Description  Creates a new session in the idle phase
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  models.Snapshot
// @Failure      429  {object}  map[string]string
// @Router       /sessions [post]
func (h *Booking) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_session")

	c, err := h.sessions.Create(ctx)
	if err != nil {
		h.l.Warn(ctx, "failed to create session", "error", err.Error())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	headers := http.Header{}
	headers.Set("Location", "/sessions/"+c.ID().String())

	h.respond(ctx, w, http.StatusCreated, c.Snapshot(), headers)
}

// GetSession godoc
// @Summary      Get session snapshot
// @Tags         Sessions
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{session_id} [get]
func (h *Booking) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_session")

	c, ok := h.controller(ctx, w, r)
	if !ok {
		return
	}

	h.respond(ctx, w, http.StatusOK, c.Snapshot(), nil)
}

// DeleteSession godoc
// @Summary      Delete session
// @Description  Drops the session and stops its timers
// @Tags         Sessions
// @Param        session_id  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{session_id} [delete]
func (h *Booking) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_session")

	id, err := sessionIDFromPath(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}
	ctx = wrap.WithSessionID(ctx, id.String())

	if err := h.sessions.Remove(ctx, id); err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RequestSession godoc
// @Summary      Start booking
// @Description  idle -> selecting
// @Tags         Booking
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/request [post]
func (h *Booking) RequestSession(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "request_session", (*booking.Controller).RequestSession)
}

// ConfirmSearch godoc
// @Summary      Confirm and search trainer
// @Description  selecting -> searching; a trainer is matched after the match delay
// @Tags         Booking
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/confirm [post]
func (h *Booking) ConfirmSearch(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "confirm_search", (*booking.Controller).ConfirmSearch)
}

// Cancel godoc
// @Summary      Cancel booking
// @Description  Any phase -> idle, all session data is discarded
// @Tags         Booking
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Router       /sessions/{session_id}/cancel [post]
func (h *Booking) Cancel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "cancel_session", (*booking.Controller).Cancel)
}

// Accept godoc
// @Summary      Accept trainer
// @Description  found -> arriving
// @Tags         Booking
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/accept [post]
func (h *Booking) Accept(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "accept_trainer", (*booking.Controller).Accept)
}

// Decline godoc
// @Summary      Decline trainer
// @Description  found -> idle
// @Tags         Booking
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/decline [post]
func (h *Booking) Decline(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "decline_trainer", (*booking.Controller).Decline)
}

// ToggleChat godoc
// @Summary      Toggle chat panel
// @Tags         Chat
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/chat/toggle [post]
func (h *Booking) ToggleChat(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "toggle_chat", (*booking.Controller).ToggleChat)
}

// UpdateSelection godoc
// @Summary      Update selection
// @Description  Sets exercise, duration (clamped and snapped) or a quick-pick duration
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Param        session_id  path  string                true  "Session ID"
// @Param        request     body  dto.SelectionRequest  true  "Selection"
// @Success      200  {object}  models.Snapshot
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /sessions/{session_id}/selection [put]
func (h *Booking) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_selection")

	c, ok := h.controller(ctx, w, r)
	if !ok {
		return
	}

	var req dto.SelectionRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Warn(ctx, "failed to read request JSON data", "error", err.Error())
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	var (
		snap models.Snapshot
		err  error
	)
	if req.Exercise != nil {
		if snap, err = c.ChooseExercise(ctx, req.ExerciseValue()); err != nil {
			h.fail(ctx, w, err)
			return
		}
	}
	if req.DurationMinutes != nil {
		if snap, err = c.SetDuration(ctx, *req.DurationMinutes); err != nil {
			h.fail(ctx, w, err)
			return
		}
	}
	if req.QuickPick != nil {
		if snap, err = c.QuickPickDuration(ctx, *req.QuickPick); err != nil {
			h.fail(ctx, w, err)
			return
		}
	}

	h.respond(ctx, w, http.StatusOK, snap, nil)
}

// UpdateDraft godoc
// @Summary      Update chat draft
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        session_id  path  string            true  "Session ID"
// @Param        request     body  dto.DraftRequest  true  "Draft"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /sessions/{session_id}/chat/draft [put]
func (h *Booking) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_chat_draft")

	c, ok := h.controller(ctx, w, r)
	if !ok {
		return
	}

	var req dto.DraftRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap, err := c.UpdateDraft(ctx, req.Text)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	h.respond(ctx, w, http.StatusOK, snap, nil)
}

// SendMessage godoc
// @Summary      Send chat message
// @Description  Sends text, or the stored draft when text is omitted. Only while the trainer is arriving.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        session_id  path  string              true   "Session ID"
// @Param        request     body  dto.MessageRequest  false  "Message"
// @Success      200  {object}  models.Snapshot
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /sessions/{session_id}/chat/messages [post]
func (h *Booking) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "send_chat_message")

	c, ok := h.controller(ctx, w, r)
	if !ok {
		return
	}

	var req dto.MessageRequest
	if err := readOptionalJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	var (
		snap models.Snapshot
		err  error
	)
	if req.Text != nil {
		snap, err = c.SendMessage(ctx, *req.Text)
	} else {
		snap, err = c.SendDraft(ctx)
	}
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	h.respond(ctx, w, http.StatusOK, snap, nil)
}

// run resolves the session and applies op.
func (h *Booking) run(w http.ResponseWriter, r *http.Request, action string, op sessionOp) {
	ctx := wrap.WithAction(r.Context(), action)

	c, ok := h.controller(ctx, w, r)
	if !ok {
		return
	}

	snap, err := op(c, ctx)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	h.respond(ctx, w, http.StatusOK, snap, nil)
}

func (h *Booking) controller(ctx context.Context, w http.ResponseWriter, r *http.Request) (*booking.Controller, bool) {
	id, err := sessionIDFromPath(r)
	if err != nil {
		h.l.Warn(ctx, "invalid session uuid format")
		badRequestResponse(w, err.Error())
		return nil, false
	}

	c, err := h.sessions.Get(ctx, id)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return nil, false
	}
	return c, true
}

// fail writes a rejected operation. Client errors are logged at warn level.
func (h *Booking) fail(ctx context.Context, w http.ResponseWriter, err error) {
	code := GetCode(err)
	if code >= http.StatusInternalServerError {
		h.l.Error(wrap.ErrorCtx(ctx, err), "booking operation failed", err)
	} else {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "booking operation rejected", "error", err.Error(), "status", code)
	}
	errorResponse(w, code, err.Error())
}

func (h *Booking) respond(ctx context.Context, w http.ResponseWriter, status int, snap models.Snapshot, headers http.Header) {
	if err := writeJSON(w, status, envelope{"session": snap}, headers); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}
