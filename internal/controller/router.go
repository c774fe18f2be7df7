package controller

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/flows"
	"github.com/Freeeeeet/finashka_bot/internal/controller/formatting"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// События старше старта процесса больше чем на это время отбрасываются
	staleGrace = 1500 * time.Millisecond

	msgUnavailable = "Сервис временно недоступен"
)

// Inbound событие платформы, приведённое к общему виду
type Inbound struct {
	Identity state.Identity
	Event    flows.Event
	SentAt   time.Time // нулевое значение: время неизвестно
	FromBot  bool
}

// Router раздаёт события по диалогам в фиксированном порядке
type Router struct {
	states   *state.Manager
	groups   *flows.GroupFlow
	teachers *flows.TeacherFlow
	homework *flows.HomeworkFlow

	bootTime time.Time
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewRouter(
	states *state.Manager,
	groups *flows.GroupFlow,
	teachers *flows.TeacherFlow,
	homework *flows.HomeworkFlow,
	loc *time.Location,
	logger *zap.Logger,
) *Router {
	if loc == nil {
		loc = time.Local
	}
	return &Router{
		states:   states,
		groups:   groups,
		teachers: teachers,
		homework: homework,
		bootTime: time.Now(),
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Dispatch обрабатывает одно событие. Ошибки и паники не выходят наружу:
// собеседник получает общий ответ, остальные диалоги не затрагиваются.
func (r *Router) Dispatch(ctx context.Context, in Inbound, out flows.Responder) {
	key := state.KeyFor(in.Identity)
	log := r.logger.With(
		zap.String("event_id", uuid.NewString()),
		zap.String("conversation", string(key)))

	if in.FromBot {
		log.Debug("Skipping message from bot")
		return
	}
	if !in.SentAt.IsZero() && in.SentAt.Before(r.bootTime.Add(-staleGrace)) {
		log.Debug("Skipping stale event", zap.Time("sent_at", in.SentAt))
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Panic while handling event", zap.Any("panic", rec), zap.Stack("stack"))
			r.unavailable(ctx, out, log)
		}
	}()

	if err := r.route(ctx, key, in.Event, out, log); err != nil {
		log.Error("Failed to handle event", zap.Error(err))
		r.unavailable(ctx, out, log)
	}
}

func (r *Router) route(ctx context.Context, key state.Key, ev flows.Event, out flows.Responder, log *zap.Logger) error {
	text := strings.TrimSpace(ev.Text)
	now := r.now()

	// /start и «В меню» забывают собеседника целиком
	if isStart(text) || text == keyboard.LabelMainMenu || ev.Payload == keyboard.PayloadMainMenu {
		r.states.Reset(key)
		conv := r.states.Get(key)
		conv.Lock()
		conv.Touch(now)
		conv.Unlock()

		log.Info("Conversation reset")
		return out.Send(ctx, flows.Welcome())
	}

	conv := r.states.Get(key)
	conv.Lock()
	defer conv.Unlock()

	conv.Touch(now)
	today := formatting.Day(now.In(r.loc))

	switch text {
	case keyboard.LabelSchedule:
		conv.ResetSchedule()
		return out.Send(ctx, flows.ScheduleRoot())
	case keyboard.LabelHomework:
		return out.Send(ctx, flows.HomeworkRoot())
	case keyboard.LabelMail:
		return out.Send(ctx, flows.MailStub())
	}

	if handled, err := r.homework.HandleCommands(ctx, conv, ev, today, out); handled {
		return err
	}

	switch {
	case text == keyboard.LabelScheduleRoot || ev.Payload == keyboard.PayloadScheduleRoot:
		conv.ResetSchedule()
		return out.Send(ctx, flows.ScheduleRoot())

	case text == keyboard.LabelGroups || ev.Payload == keyboard.PayloadGroups:
		conv.ResetHomework()
		next, reply := flows.OpenGroup()
		conv.Schedule = next
		return out.Send(ctx, reply)

	case text == keyboard.LabelTeachers || ev.Payload == keyboard.PayloadTeachers:
		conv.ResetHomework()
		next, reply := flows.OpenTeacher()
		conv.Schedule = next
		return out.Send(ctx, reply)
	}

	if handled, err := r.groups.Handle(ctx, conv, ev.Text, today, out); handled {
		return err
	}
	if handled, err := r.teachers.Handle(ctx, conv, ev.Text, today, out); handled {
		return err
	}
	if handled, err := r.homework.HandleWatch(ctx, conv, ev, today, out); handled {
		return err
	}

	log.Debug("Event not handled",
		zap.Stringer("schedule_mode", conv.Schedule.Mode),
		zap.Stringer("homework_mode", conv.Homework.Mode),
		zap.String("payload", ev.Payload))
	return nil
}

func (r *Router) unavailable(ctx context.Context, out flows.Responder, log *zap.Logger) {
	if err := out.Send(ctx, flows.Reply{Text: msgUnavailable}); err != nil {
		log.Error("Failed to send fallback reply", zap.Error(err))
	}
}

// isStart команда /start, в том числе с параметром deep link
func isStart(text string) bool {
	return text == "/start" || strings.HasPrefix(text, "/start ")
}
