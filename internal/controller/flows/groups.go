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

// OpenGroup начало диалога расписания группы
func OpenGroup() (state.Schedule, Reply) {
	return state.Schedule{Mode: state.GroupAskName}, newReply(msgAskGroup)
}

// StepGroup переход диалога группы по тексту. Чистая функция.
func StepGroup(s state.Schedule, text string, today time.Time) (state.Schedule, Action) {
	text = trimmed(text)
	if text == "" || !s.Mode.IsGroup() {
		return s, notHandled()
	}

	switch s.Mode {
	case state.GroupAskName:
		return s, Action{
			Kind:    ActSearch,
			Query:   text,
			Replies: []Reply{newReply(msgSearchingGroup)},
		}

	case state.GroupSelected:
		if s.GroupID == "" {
			s.Mode = state.GroupAskName
			return s, reply(msgGroupNotChosen)
		}

		switch text {
		case keyboard.LabelPickDate:
			s.Mode = state.GroupAskDate
			return s, reply(msgAskDate)
		case keyboard.LabelChangeGroup:
			next, r := OpenGroup()
			return next, Action{Kind: ActReply, Replies: []Reply{r}}
		}

		if rng, ok := RangeFor(text, today); ok {
			return s, Action{Kind: ActTimetable, Range: rng}
		}
		return s, notHandled()

	case state.GroupAskDate:
		if s.GroupID == "" {
			s.Mode = state.GroupAskName
			return s, reply(msgGroupNotChosen)
		}

		d, ok := formatting.ParseUserDate(text)
		if !ok {
			return s, reply(msgBadDate)
		}
		s.Mode = state.GroupSelected
		return s, Action{Kind: ActTimetable, Range: SingleDay(d)}
	}

	return s, notHandled()
}

// SelectGroup выбирает первую найденную группу. Пустой поиск оставляет состояние как было.
func SelectGroup(s state.Schedule, hits []model.SearchHit) (state.Schedule, Reply) {
	if len(hits) == 0 {
		return s, newReply(msgGroupNotFound)
	}

	h := hits[0]
	s.Mode = state.GroupSelected
	s.GroupID = h.ID
	s.GroupName = h.Name
	return s, newReply(fmt.Sprintf(msgGroupSelected, h.Name), keyboard.GroupRange())
}

// DayLessons занятия одного дня для отрисовки
type DayLessons struct {
	Day     time.Time
	Lessons []model.Lesson
}

// SplitGroupDays раскладывает загруженные занятия по дням показа.
// Для одного дня при пустом фильтре показываются все записи.
func SplitGroupDays(rng DateRange, lessons []model.Lesson) []DayLessons {
	if !rng.Week {
		items := formatting.FilterByDate(lessons, formatting.ISODate(rng.Start))
		if len(items) == 0 {
			items = lessons
		}
		return []DayLessons{{Day: rng.Start, Lessons: items}}
	}

	days := rng.GroupDays()
	out := make([]DayLessons, 0, len(days))
	for _, d := range days {
		out = append(out, DayLessons{Day: d, Lessons: formatting.FilterByDate(lessons, formatting.ISODate(d))})
	}
	return out
}

// GroupFlow исполняет переходы диалога расписания группы
type GroupFlow struct {
	api      Timetable
	homework *homeworkPrinter
	logger   *zap.Logger
}

func NewGroupFlow(api Timetable, hw HomeworkBook, logger *zap.Logger) *GroupFlow {
	return &GroupFlow{
		api:      api,
		homework: &homeworkPrinter{book: hw, logger: logger},
		logger:   logger,
	}
}

// Handle обрабатывает текст в рамках диалога группы; false, если событие не для него
func (f *GroupFlow) Handle(ctx context.Context, conv *state.Conversation, text string, today time.Time, out Responder) (bool, error) {
	next, act := StepGroup(conv.Schedule, text, today)

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
		hits, err := f.api.SearchGroup(ctx, act.Query)
		if err != nil {
			f.logger.Warn("Group search failed", zap.String("query", act.Query), zap.Error(err))
			return true, out.Send(ctx, newReply(fmt.Sprintf(msgGroupSearchErr, err)))
		}
		selected, r := SelectGroup(conv.Schedule, hits)
		conv.Schedule = selected
		return true, out.Send(ctx, r)

	case ActTimetable:
		name := next.GroupName
		if name == "" {
			name = defaultGroupName
		}

		lessons, err := f.api.GroupTimetable(ctx, next.GroupID, act.Range.Start, act.Range.End)
		if err != nil {
			f.logger.Warn("Group timetable failed", zap.String("group", name), zap.Error(err))
			return true, out.Send(ctx, newReply(fmt.Sprintf(msgTimetableErr, err)))
		}

		for _, day := range SplitGroupDays(act.Range, lessons) {
			if err := out.Send(ctx, newReply(formatting.GroupDay(day.Lessons, name))); err != nil {
				return true, err
			}
			if err := f.homework.crossCheck(ctx, out, name, day.Day); err != nil {
				return true, err
			}
		}

		conv.Schedule = next
		return true, out.Send(ctx, newReply(msgNextAction, keyboard.GroupRange()))
	}

	return false, nil
}
