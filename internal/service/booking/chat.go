package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/google/uuid"
)

const TrainerGreeting = "Olá! Estou a caminho do seu endereço. Chego em breve!"

// CannedReplies are the trainer answers picked at random after a user message.
var CannedReplies = []string{
	"Perfeito! Já estou chegando.",
	"Entendido, vou levar os equipamentos necessários.",
	"Ótimo! Vamos ter um treino excelente hoje.",
	"Certo, estou a poucos minutos daí.",
	"Combinado! Prepare uma garrafa de água.",
}

// ToggleChat flips the chat panel. Requires a selected trainer.
func (c *Controller) ToggleChat(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "toggle_chat")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if _, ok := models.TrainerOf(c.state); !ok {
		return c.snapshot(), wrap.Error(ctx, types.ErrNoTrainer)
	}

	c.chat.Visible = !c.chat.Visible
	c.emit(types.EventChatToggled, nil)

	return c.snapshot(), nil
}

// UpdateDraft stores the chat input text.
func (c *Controller) UpdateDraft(ctx context.Context, text string) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "update_chat_draft")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if _, ok := models.TrainerOf(c.state); !ok {
		return c.snapshot(), wrap.Error(ctx, types.ErrNoTrainer)
	}

	c.chat.Draft = text
	c.emit(types.EventDraftUpdated, nil)

	return c.snapshot(), nil
}

// SendMessage appends a user message and schedules a canned trainer reply.
// Whitespace-only text is rejected and leaves history and draft untouched.
func (c *Controller) SendMessage(ctx context.Context, text string) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "send_chat_message")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	return c.sendLocked(ctx, text)
}

// SendDraft sends the stored draft.
func (c *Controller) SendDraft(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "send_chat_draft")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	return c.sendLocked(ctx, c.chat.Draft)
}

// sendLocked accepts messages only after the first arrival tick.
func (c *Controller) sendLocked(ctx context.Context, text string) (models.Snapshot, error) {
	arriving, ok := c.state.(models.Arriving)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}
	if arriving.Ticks == 0 {
		return c.snapshot(), wrap.Error(ctx, fmt.Errorf("%w: chat opens after the first arrival tick", types.ErrInvalidPhase))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return c.snapshot(), wrap.Error(ctx, types.ErrEmptyMessage)
	}

	msg := c.appendMessage(types.SenderUser, text)
	c.chat.Draft = ""
	c.schedule(c.cfg.ReplyDelay, types.ActionTrainerReply, c.reply)
	c.emit(types.EventChatMessage, &msg)

	return c.snapshot(), nil
}

// scheduleGreeting never fires ahead of the first arrival tick.
func (c *Controller) scheduleGreeting() {
	c.schedule(max(c.cfg.GreetingDelay, c.cfg.TickInterval), types.ActionTrainerGreeting, c.greet)
}

func (c *Controller) greet(ctx context.Context) {
	if len(c.chat.History) > 0 {
		c.l.Debug(ctx, "greeting skipped, chat already started")
		return
	}

	msg := c.appendMessage(types.SenderTrainer, TrainerGreeting)
	c.emit(types.EventChatMessage, &msg)
}

func (c *Controller) reply(ctx context.Context) {
	text := CannedReplies[c.rnd.IntN(len(CannedReplies))]
	msg := c.appendMessage(types.SenderTrainer, text)
	c.emit(types.EventChatMessage, &msg)
	c.l.Debug(ctx, "trainer replied")
}

func (c *Controller) appendMessage(sender types.SenderRole, text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New(),
		Sender:    sender,
		Text:      text,
		CreatedAt: c.sched.Now(),
	}
	c.chat.History = append(c.chat.History, msg)
	return msg
}
