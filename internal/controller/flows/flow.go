package flows

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/formatting"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/Freeeeeet/finashka_bot/internal/service"
)

// Event входящее событие, уже разобранное на границе платформы
type Event struct {
	Text        string
	Payload     string
	Attachments []model.Attachment
}

// Reply исходящее сообщение с необязательным меню
type Reply struct {
	Text string
	Menu *keyboard.Menu
}

// Responder отправляет ответы собеседнику
type Responder interface {
	Send(ctx context.Context, r Reply) error
}

// Timetable API расписания
type Timetable interface {
	SearchGroup(ctx context.Context, query string) ([]model.SearchHit, error)
	SearchTeacher(ctx context.Context, surname string) ([]model.SearchHit, error)
	GroupTimetable(ctx context.Context, groupID string, start, end time.Time) ([]model.Lesson, error)
	TeacherTimetable(ctx context.Context, teacherID string, start, end time.Time) ([]model.Lesson, error)
}

// HomeworkBook операции с ДЗ, нужные диалогам
type HomeworkBook interface {
	ForDate(ctx context.Context, group string, day time.Time) (*service.DayHomework, error)
	HasHomeworkOn(ctx context.Context, group string, day time.Time) service.BestEffort[bool]
	Add(ctx context.Context, draft *model.HomeworkDraft) (*model.Homework, error)
	AcceptAttachments(group string, deadline time.Time, atts []model.Attachment) []string
	ExistingFiles(group string, files []string) []string
}

// ActionKind что исполнитель должен сделать после перехода
type ActionKind int

const (
	// ActNotHandled событие не относится к диалогу, роутер пробует следующий
	ActNotHandled ActionKind = iota
	// ActReply только отправить ответы
	ActReply
	// ActSearch найти группу или преподавателя по Query
	ActSearch
	// ActTimetable загрузить расписание за Range
	ActTimetable
	// ActHomeworkDays показать ДЗ группы за Days
	ActHomeworkDays
	// ActAcceptFiles принять вложения в черновик
	ActAcceptFiles
	// ActSaveDraft записать черновик
	ActSaveDraft
)

// Action результат чистого перехода.
// Для ActReply новое состояние применяется сразу, для остальных только после успешного I/O.
type Action struct {
	Kind    ActionKind
	Replies []Reply
	Query   string
	Range   DateRange
	Group   string
	Days    []time.Time
}

func notHandled() Action {
	return Action{Kind: ActNotHandled}
}

func reply(text string, menu ...*keyboard.Menu) Action {
	return Action{Kind: ActReply, Replies: []Reply{newReply(text, menu...)}}
}

func newReply(text string, menu ...*keyboard.Menu) Reply {
	r := Reply{Text: text}
	if len(menu) > 0 {
		r.Menu = menu[0]
	}
	return r
}

// DateRange запрашиваемый период. Week: неделя с понедельника по воскресенье.
type DateRange struct {
	Start time.Time
	End   time.Time
	Week  bool
}

// SingleDay период из одного дня
func SingleDay(d time.Time) DateRange {
	d = formatting.Day(d)
	return DateRange{Start: d, End: d}
}

// RangeFor переводит подпись кнопки периода в даты. Сравнение точное.
func RangeFor(label string, today time.Time) (DateRange, bool) {
	today = formatting.Day(today)

	switch label {
	case keyboard.LabelToday:
		return SingleDay(today), true
	case keyboard.LabelTomorrow:
		return SingleDay(today.AddDate(0, 0, 1)), true
	case keyboard.LabelThisWeek:
		mon, sun := formatting.WeekBounds(today)
		return DateRange{Start: mon, End: sun, Week: true}, true
	case keyboard.LabelNextWeek:
		mon, sun := formatting.WeekBounds(today)
		return DateRange{Start: mon.AddDate(0, 0, 7), End: sun.AddDate(0, 0, 7), Week: true}, true
	}
	return DateRange{}, false
}

// GroupDays дни, которые показывает расписание группы: одна дата или понедельник..суббота
func (r DateRange) GroupDays() []time.Time {
	if !r.Week {
		return []time.Time{r.Start}
	}
	mon, _ := formatting.WeekBounds(r.Start)
	days := make([]time.Time, 6)
	for i := range days {
		days[i] = mon.AddDate(0, 0, i)
	}
	return days
}

func sendAll(ctx context.Context, out Responder, replies []Reply) error {
	for _, r := range replies {
		if err := out.Send(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
