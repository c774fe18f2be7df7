package flows

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/formatting"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"go.uber.org/zap"
)

// OpenTeacher начало диалога расписания преподавателя
func OpenTeacher() (state.Schedule, Reply) {
	return state.Schedule{Mode: state.TeacherAskSurname}, newReply(msgAskSurname)
}

// StepTeacher переход диалога преподавателя по тексту. Чистая функция.
func StepTeacher(s state.Schedule, text string, today time.Time) (state.Schedule, Action) {
	text = trimmed(text)
	if text == "" || !s.Mode.IsTeacher() {
		return s, notHandled()
	}

	switch s.Mode {
	case state.TeacherAskSurname:
		return s, Action{
			Kind:    ActSearch,
			Query:   text,
			Replies: []Reply{newReply(msgSearchingTeacher)},
		}

	case state.TeacherSelected:
		if s.TeacherID == "" {
			s.Mode = state.TeacherAskSurname
			return s, reply(msgTeacherNotChosen)
		}

		switch text {
		case keyboard.LabelPickDate:
			s.Mode = state.TeacherAskDate
			return s, reply(msgAskDate)
		case keyboard.LabelChangeTeacher:
			next, r := OpenTeacher()
			return next, Action{Kind: ActReply, Replies: []Reply{r}}
		}

		if rng, ok := RangeFor(text, today); ok {
			return s, Action{Kind: ActTimetable, Range: rng}
		}
		return s, notHandled()

	case state.TeacherAskDate:
		if s.TeacherID == "" {
			s.Mode = state.TeacherAskSurname
			return s, reply(msgTeacherNotChosen)
		}

		d, ok := formatting.ParseUserDate(text)
		if !ok {
			return s, reply(msgBadDate)
		}
		s.Mode = state.TeacherSelected
		return s, Action{Kind: ActTimetable, Range: SingleDay(d)}
	}

	return s, notHandled()
}

// SelectTeacher выбирает первого найденного преподавателя
func SelectTeacher(s state.Schedule, hits []model.SearchHit) (state.Schedule, Reply) {
	if len(hits) == 0 {
		return s, newReply(msgTeacherNotFound)
	}

	h := hits[0]
	s.Mode = state.TeacherSelected
	s.TeacherID = h.ID
	s.TeacherName = h.Name
	return s, newReply(msgChoosePeriod, keyboard.TeacherRange())
}

// TeacherDays тексты по дням. Неделя показывает только даты, которые пришли из API.
func TeacherDays(rng DateRange, lessons []model.Lesson, teacherName string) []string {
	if len(lessons) == 0 {
		if !rng.Week {
			return []string{formatting.NoLessonsOn(formatting.ISODate(rng.Start))}
		}
		return []string{formatting.NoLessonsBetween(formatting.ISODate(rng.Start), formatting.ISODate(rng.End))}
	}

	if rng.Week {
		dates, byDate := formatting.GroupByDate(lessons)
		out := make([]string, 0, len(dates))
		for _, d := range dates {
			out = append(out, formatting.TeacherDay(byDate[d], teacherName))
		}
		return out
	}

	items := formatting.FilterByDate(lessons, formatting.ISODate(rng.Start))
	if len(items) == 0 {
		items = lessons
	}
	return []string{formatting.TeacherDay(items, teacherName)}
}

// TeacherFlow исполняет переходы диалога преподавателя
type TeacherFlow struct {
	api    Timetable
	logger *zap.Logger
}

func NewTeacherFlow(api Timetable, logger *zap.Logger) *TeacherFlow {
	return &TeacherFlow{
		api:    api,
		logger: logger,
	}
}

// Handle обрабатывает текст в рамках диалога преподавателя
func (f *TeacherFlow) Handle(ctx context.Context, conv *state.Conversation, text string, today time.Time, out Responder) (bool, error) {
	next, act := StepTeacher(conv.Schedule, text, today)

	switch act.Kind {
	case ActNotHandled:
		return false, nil

	case ActReply:
		conv.Schedule = next
		return true, sendAll(ctx, out, act.Replies)

	case ActSearch:
		if err := sendAll(ctx, out, act.Replies); err != nil {
			return true, err
		}
		hits, err := f.api.SearchTeacher(ctx, act.Query)
		if err != nil {
			f.logger.Warn("Teacher search failed", zap.String("query", act.Query), zap.Error(err))
			return true, out.Send(ctx, newReply(fmt.Sprintf(msgTeacherSearchErr, err)))
		}
		selected, r := SelectTeacher(conv.Schedule, hits)
		conv.Schedule = selected
		return true, out.Send(ctx, r)

	case ActTimetable:
		name := next.TeacherName
		if name == "" {
			name = defaultTeacherName
		}

		lessons, err := f.api.TeacherTimetable(ctx, next.TeacherID, act.Range.Start, act.Range.End)
		if err != nil {
			f.logger.Warn("Teacher timetable failed", zap.String("teacher", name), zap.Error(err))
			return true, out.Send(ctx, newReply(fmt.Sprintf(msgTimetableErr, err)))
		}

		for _, text := range TeacherDays(act.Range, lessons, name) {
			if err := out.Send(ctx, newReply(text)); err != nil {
				return true, err
			}
		}

		conv.Schedule = next
		return true, out.Send(ctx, newReply(msgChoosePeriod, keyboard.TeacherRange()))
	}

	return false, nil
}
