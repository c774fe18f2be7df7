package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/flows"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/Freeeeeet/finashka_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTimetable struct {
	hits  []model.SearchHit
	err   error
	panic bool
}

func (s *stubTimetable) SearchGroup(context.Context, string) ([]model.SearchHit, error) {
	if s.panic {
		panic("upstream exploded")
	}
	return s.hits, s.err
}

func (s *stubTimetable) SearchTeacher(context.Context, string) ([]model.SearchHit, error) {
	return s.hits, s.err
}

func (s *stubTimetable) GroupTimetable(context.Context, string, time.Time, time.Time) ([]model.Lesson, error) {
	return nil, s.err
}

func (s *stubTimetable) TeacherTimetable(context.Context, string, time.Time, time.Time) ([]model.Lesson, error) {
	return nil, s.err
}

type stubBook struct{}

func (stubBook) ForDate(_ context.Context, _ string, day time.Time) (*service.DayHomework, error) {
	return &service.DayHomework{Day: day}, nil
}

func (stubBook) HasHomeworkOn(context.Context, string, time.Time) service.BestEffort[bool] {
	return service.BestEffort[bool]{}
}

func (stubBook) Add(context.Context, *model.HomeworkDraft) (*model.Homework, error) {
	return &model.Homework{}, nil
}

func (stubBook) AcceptAttachments(string, time.Time, []model.Attachment) []string { return nil }
func (stubBook) ExistingFiles(string, []string) []string                          { return nil }

type recordingResponder struct {
	replies []flows.Reply
	err     error
}

func (r *recordingResponder) Send(_ context.Context, reply flows.Reply) error {
	r.replies = append(r.replies, reply)
	return r.err
}

func (r *recordingResponder) last() string {
	if len(r.replies) == 0 {
		return ""
	}
	return r.replies[len(r.replies)-1].Text
}

func newTestRouter(api *stubTimetable) (*Router, *state.Manager) {
	logger := zap.NewNop()
	states := state.NewManager()
	r := NewRouter(
		states,
		flows.NewGroupFlow(api, stubBook{}, logger),
		flows.NewTeacherFlow(api, logger),
		flows.NewHomeworkFlow(stubBook{}, logger),
		time.UTC,
		logger,
	)
	return r, states
}

var alice = state.Identity{ChatID: 10, UserID: 20}

func textEvent(s string) Inbound {
	return Inbound{Identity: alice, Event: flows.Event{Text: s}, SentAt: time.Now()}
}

func payloadEvent(p string) Inbound {
	return Inbound{Identity: alice, Event: flows.Event{Payload: p}}
}

func TestRouter_StartResets(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{})
	conv := states.Get(state.KeyFor(alice))
	conv.Schedule = state.Schedule{Mode: state.GroupSelected, GroupID: "1"}

	out := &recordingResponder{}
	r.Dispatch(context.Background(), textEvent("/start"), out)

	require.Len(t, out.replies, 1)
	assert.Equal(t, keyboard.MainMenu(), out.replies[0].Menu)
	assert.Equal(t, state.ScheduleIdle, states.Get(state.KeyFor(alice)).Schedule.Mode)
}

func TestRouter_Filters(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{})
	out := &recordingResponder{}

	stale := textEvent("/start")
	stale.SentAt = r.bootTime.Add(-10 * time.Second)
	r.Dispatch(context.Background(), stale, out)

	fromBot := textEvent("/start")
	fromBot.FromBot = true
	r.Dispatch(context.Background(), fromBot, out)

	assert.Empty(t, out.replies)
	assert.Zero(t, states.Len())
}

func TestRouter_OpenGroupsClearsHomework(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{})
	conv := states.Get(state.KeyFor(alice))
	conv.Homework = state.Homework{Mode: state.WatchSelected, Group: "БИ25-6"}

	out := &recordingResponder{}
	r.Dispatch(context.Background(), payloadEvent(keyboard.PayloadGroups), out)

	assert.Equal(t, state.GroupAskName, conv.Schedule.Mode)
	assert.Equal(t, state.Homework{}, conv.Homework)
	assert.Contains(t, out.last(), "Введите название группы")
}

func TestRouter_HomeworkGroupPromptWins(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{})
	conv := states.Get(state.KeyFor(alice))
	conv.Homework = state.Homework{Mode: state.WatchAskGroup}

	out := &recordingResponder{}
	r.Dispatch(context.Background(), textEvent("Группы"), out)

	assert.Equal(t, state.Homework{Mode: state.WatchSelected, Group: "Группы"}, conv.Homework)
	assert.Equal(t, state.ScheduleIdle, conv.Schedule.Mode)
}

func TestRouter_GroupSearchThroughRouter(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{hits: []model.SearchHit{{ID: "101", Name: "БИ25-6"}}})
	ctx := context.Background()
	out := &recordingResponder{}

	r.Dispatch(ctx, textEvent("Группы"), out)
	r.Dispatch(ctx, textEvent("БИ25-6"), out)

	conv := states.Get(state.KeyFor(alice))
	assert.Equal(t, state.GroupSelected, conv.Schedule.Mode)
	assert.Equal(t, "101", conv.Schedule.GroupID)
}

func TestRouter_PanicAnswersUnavailable(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{panic: true})
	states.Get(state.KeyFor(alice)).Schedule = state.Schedule{Mode: state.GroupAskName}

	out := &recordingResponder{}
	require.NotPanics(t, func() {
		r.Dispatch(context.Background(), textEvent("БИ25-6"), out)
	})
	assert.Equal(t, msgUnavailable, out.last())

	// состояние не осталось заблокированным
	conv := states.Get(state.KeyFor(alice))
	conv.Lock()
	conv.Unlock()
}

func TestRouter_SendErrorAnswersUnavailable(t *testing.T) {
	r, _ := newTestRouter(&stubTimetable{})
	out := &recordingResponder{err: errors.New("telegram is down")}

	r.Dispatch(context.Background(), textEvent("Расписание"), out)

	require.Len(t, out.replies, 2)
	assert.Equal(t, msgUnavailable, out.last())
}

func TestRouter_UnknownTextIgnored(t *testing.T) {
	r, _ := newTestRouter(&stubTimetable{})
	out := &recordingResponder{}

	r.Dispatch(context.Background(), textEvent("привет"), out)
	assert.Empty(t, out.replies)
}

func TestRouter_IsolatedConversations(t *testing.T) {
	r, states := newTestRouter(&stubTimetable{})
	ctx := context.Background()
	bob := state.Identity{ChatID: 11, UserID: 21}

	r.Dispatch(ctx, payloadEvent(keyboard.PayloadHomeworkAdd), &recordingResponder{})
	r.Dispatch(ctx, textEvent("БИ25-6"), &recordingResponder{})
	r.Dispatch(ctx, Inbound{Identity: bob, Event: flows.Event{Payload: keyboard.PayloadHomeworkAdd}}, &recordingResponder{})

	a := states.Get(state.KeyFor(alice))
	b := states.Get(state.KeyFor(bob))
	assert.Equal(t, state.AddAskSubject, a.Homework.Mode)
	assert.Equal(t, "БИ25-6", a.Homework.Draft.Group)
	assert.Equal(t, state.AddAskGroup, b.Homework.Mode)
	assert.Empty(t, b.Homework.Draft.Group)
}
