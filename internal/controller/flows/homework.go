package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/formatting"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/Freeeeeet/finashka_bot/internal/service"
	"go.uber.org/zap"
)

// OpenWatch начало просмотра ДЗ
func OpenWatch() (state.Homework, Reply) {
	return state.Homework{Mode: state.WatchAskGroup}, newReply(msgHwAskGroup)
}

// OpenAdd начало добавления ДЗ с пустым черновиком
func OpenAdd() (state.Homework, Reply) {
	return state.Homework{Mode: state.AddAskGroup, Draft: &model.HomeworkDraft{}}, newReply(msgAddAskGroup)
}

// AddMore новое ДЗ для той же группы
func AddMore(h state.Homework) (state.Homework, Reply) {
	group := h.Group
	if group == "" {
		next, _ := OpenAdd()
		return next, newReply(msgAddAskGroupShort)
	}
	return state.Homework{
		Mode:  state.AddAskSubject,
		Group: group,
		Draft: &model.HomeworkDraft{Group: group, Files: []string{}},
	}, newReply(fmt.Sprintf(msgAddAskSubject, group))
}

// StepHomeworkCommands кнопки раздела ДЗ, шаги добавления и ввод группы.
// Роутер вызывает его раньше диалогов расписания.
func StepHomeworkCommands(h state.Homework, ev Event, today time.Time) (state.Homework, Action) {
	text := trimmed(ev.Text)

	switch {
	case ev.Payload == keyboard.PayloadHomeworkWatch || text == keyboard.LabelWatch:
		next, r := OpenWatch()
		return next, Action{Kind: ActReply, Replies: []Reply{r}}

	case ev.Payload == keyboard.PayloadHomeworkAdd || text == keyboard.LabelAdd:
		next, r := OpenAdd()
		return next, Action{Kind: ActReply, Replies: []Reply{r}}

	case ev.Payload == keyboard.PayloadHomeworkAddMore:
		next, r := AddMore(h)
		return next, Action{Kind: ActReply, Replies: []Reply{r}}

	case ev.Payload == keyboard.PayloadHomeworkNoFiles:
		if h.Draft == nil || !h.Draft.Complete() {
			return h, reply(msgAddIncomplete)
		}
		return h, Action{Kind: ActSaveDraft}
	}

	switch ev.Payload {
	case keyboard.PayloadHomeworkToday:
		return homeworkDays(h, []time.Time{today})
	case keyboard.PayloadHomeworkTomorrow:
		return homeworkDays(h, []time.Time{today.AddDate(0, 0, 1)})
	case keyboard.PayloadHomeworkThisWeek:
		return homeworkDays(h, service.WeekDays(today))
	case keyboard.PayloadHomeworkNextWeek:
		return homeworkDays(h, service.WeekDays(today.AddDate(0, 0, 7)))
	case keyboard.PayloadHomeworkPickDate:
		h.Mode = state.WatchAskDate
		return h, reply(msgHwAskDate)
	case keyboard.PayloadHomeworkChangeGroup:
		next, r := OpenWatch()
		return next, Action{Kind: ActReply, Replies: []Reply{r}}
	}

	if h.Mode.Adding() {
		return stepAdd(h, ev)
	}

	if h.Mode == state.WatchAskGroup && text != "" {
		h.Mode = state.WatchSelected
		h.Group = text
		return h, Action{Kind: ActReply, Replies: []Reply{
			newReply(fmt.Sprintf(msgHwGroupEntered, text)),
			newReply(msgChoosePeriod, keyboard.HomeworkRange()),
		}}
	}

	return h, notHandled()
}

// StepHomeworkWatch набранные текстом периоды и ввод даты просмотра ДЗ
func StepHomeworkWatch(h state.Homework, text string, today time.Time) (state.Homework, Action) {
	text = trimmed(text)
	if text == "" {
		return h, notHandled()
	}

	switch h.Mode {
	case state.WatchSelected:
		if h.Group == "" {
			h.Mode = state.WatchAskGroup
			return h, reply(msgHwGroupNotChosen)
		}

		switch strings.ToLower(text) {
		case "сегодня":
			return homeworkDays(h, []time.Time{today})
		case "завтра":
			return homeworkDays(h, []time.Time{today.AddDate(0, 0, 1)})
		case "эта неделя", "текущая неделя":
			return homeworkDays(h, service.WeekDays(today))
		case "след неделя", "следующая неделя":
			return homeworkDays(h, service.WeekDays(today.AddDate(0, 0, 7)))
		case "выбрать дату":
			h.Mode = state.WatchAskDate
			return h, reply(msgHwAskDate)
		case "сменить группу":
			next, r := OpenWatch()
			return next, Action{Kind: ActReply, Replies: []Reply{r}}
		}
		return h, notHandled()

	case state.WatchAskDate:
		if h.Group == "" {
			h.Mode = state.WatchAskGroup
			return h, reply(msgHwGroupNotChosen)
		}
		d, ok := formatting.ParseUserDate(text)
		if !ok {
			return h, reply(msgHwBadDate)
		}
		h.Mode = state.WatchSelected
		return h, Action{Kind: ActHomeworkDays, Group: h.Group, Days: []time.Time{d}}
	}

	return h, notHandled()
}

func homeworkDays(h state.Homework, days []time.Time) (state.Homework, Action) {
	if h.Group == "" {
		h.Mode = state.WatchAskGroup
		return h, reply(msgHwGroupNotChosen)
	}
	return h, Action{Kind: ActHomeworkDays, Group: h.Group, Days: days}
}

func stepAdd(h state.Homework, ev Event) (state.Homework, Action) {
	if ev.Payload != "" {
		return h, notHandled()
	}

	text := trimmed(ev.Text)
	d := cloneDraft(h.Draft)
	h.Draft = d

	switch h.Mode {
	case state.AddAskGroup:
		if text == "" {
			return h, reply(msgAddAskGroup)
		}
		d.Group = text
		h.Mode = state.AddAskSubject
		return h, reply(fmt.Sprintf(msgAddAskSubject, text))

	case state.AddAskSubject:
		if text == "" {
			return h, reply(fmt.Sprintf(msgAddAskSubject, d.Group))
		}
		d.Subject = text
		h.Mode = state.AddAskDeadline
		return h, reply(msgAddAskDeadline)

	case state.AddAskDeadline:
		deadline, ok := formatting.ParseUserDate(text)
		if !ok {
			return h, reply(msgHwBadDate)
		}
		d.Deadline = deadline
		h.Mode = state.AddAskTask
		return h, reply(msgAddAskTask)

	case state.AddAskTask:
		// Пустое задание принимается, его отклонит только сохранение
		d.Task = text
		if d.Files == nil {
			d.Files = []string{}
		}
		h.Mode = state.AddWaitFiles
		return h, reply(msgAddAskFiles, keyboard.HomeworkNoFiles())

	case state.AddWaitFiles:
		if len(ev.Attachments) > 0 {
			return h, Action{Kind: ActAcceptFiles}
		}
		return h, reply(msgAddFilesHint)
	}

	return h, notHandled()
}

// AddFiles дописывает принятые файлы в черновик
func AddFiles(h state.Homework, names []string) (state.Homework, Reply) {
	if len(names) == 0 {
		return h, newReply(msgAddFilesHint)
	}
	d := cloneDraft(h.Draft)
	d.Files = append(d.Files, names...)
	h.Draft = d
	return h, newReply(fmt.Sprintf(msgAddFilesTaken, len(names)))
}

// AfterSave после записи диалог возвращается к просмотру той же группы
func AfterSave(h state.Homework) state.Homework {
	group := h.Group
	if h.Draft != nil {
		group = h.Draft.Group
	}
	return state.Homework{Mode: state.WatchSelected, Group: group}
}

func cloneDraft(d *model.HomeworkDraft) *model.HomeworkDraft {
	if d == nil {
		return &model.HomeworkDraft{}
	}
	c := *d
	c.Files = append([]string(nil), d.Files...)
	return &c
}

// HomeworkFlow исполняет переходы диалога ДЗ
type HomeworkFlow struct {
	book    HomeworkBook
	printer *homeworkPrinter
	logger  *zap.Logger
}

func NewHomeworkFlow(book HomeworkBook, logger *zap.Logger) *HomeworkFlow {
	return &HomeworkFlow{
		book:    book,
		printer: &homeworkPrinter{book: book, logger: logger},
		logger:  logger,
	}
}

// HandleCommands см. StepHomeworkCommands
func (f *HomeworkFlow) HandleCommands(ctx context.Context, conv *state.Conversation, ev Event, today time.Time, out Responder) (bool, error) {
	next, act := StepHomeworkCommands(conv.Homework, ev, today)
	return f.execute(ctx, conv, next, act, ev, out)
}

// HandleWatch см. StepHomeworkWatch
func (f *HomeworkFlow) HandleWatch(ctx context.Context, conv *state.Conversation, ev Event, today time.Time, out Responder) (bool, error) {
	next, act := StepHomeworkWatch(conv.Homework, ev.Text, today)
	return f.execute(ctx, conv, next, act, ev, out)
}

func (f *HomeworkFlow) execute(ctx context.Context, conv *state.Conversation, next state.Homework, act Action, ev Event, out Responder) (bool, error) {
	switch act.Kind {
	case ActNotHandled:
		return false, nil

	case ActReply:
		// Вход в раздел ДЗ закрывает диалог расписания
		if conv.Homework.Mode == state.HomeworkIdle && next.Mode != state.HomeworkIdle {
			conv.ResetSchedule()
		}
		conv.Homework = next
		return true, sendAll(ctx, out, act.Replies)

	case ActHomeworkDays:
		replies, err := f.printer.collect(ctx, act.Group, act.Days)
		if err != nil {
			f.logger.Warn("Homework lookup failed", zap.String("group", act.Group), zap.Error(err))
			return true, out.Send(ctx, newReply(fmt.Sprintf(msgHwLookupErr, err)))
		}
		if err := sendAll(ctx, out, replies); err != nil {
			return true, err
		}
		conv.Homework = next
		return true, out.Send(ctx, newReply(msgChoosePeriod, keyboard.HomeworkRange()))

	case ActAcceptFiles:
		d := next.Draft
		names := f.book.AcceptAttachments(d.Group, d.Deadline, ev.Attachments)
		withFiles, r := AddFiles(next, names)
		conv.Homework = withFiles
		return true, out.Send(ctx, r)

	case ActSaveDraft:
		draft := next.Draft
		if _, err := f.book.Add(ctx, draft); err != nil {
			f.logger.Error("Failed to save homework", zap.String("group", draft.Group), zap.Error(err))
			return true, out.Send(ctx, newReply(msgAddSaveErr))
		}
		conv.Homework = AfterSave(next)
		return true, sendAll(ctx, out, []Reply{
			newReply(formatting.HomeworkAdded(draft)),
			newReply(msgAddNextAction, keyboard.HomeworkAfterAdd()),
		})
	}

	return false, nil
}

// homeworkPrinter собирает ответы с ДЗ по дням
type homeworkPrinter struct {
	book   HomeworkBook
	logger *zap.Logger
}

func (p *homeworkPrinter) collect(ctx context.Context, group string, days []time.Time) ([]Reply, error) {
	var replies []Reply

	for _, day := range days {
		res, err := p.book.ForDate(ctx, group, day)
		if err != nil {
			return nil, err
		}
		if !res.Known {
			return []Reply{newReply(msgHwUnknownGroup)}, nil
		}

		human := formatting.HumanDate(day)
		if len(res.Items) == 0 {
			replies = append(replies, newReply(fmt.Sprintf(msgHwNothingOn, human)))
			continue
		}

		for _, hw := range res.Items {
			replies = append(replies, newReply(formatting.HomeworkItem(hw, human)))
			for _, path := range p.book.ExistingFiles(group, hw.Files) {
				replies = append(replies, newReply(fmt.Sprintf(msgHwFile, path)))
			}
		}
	}

	return replies, nil
}

// crossCheck дописывает ДЗ к расписанию дня, если оно есть. Ошибки поиска не показываются.
func (p *homeworkPrinter) crossCheck(ctx context.Context, out Responder, group string, day time.Time) error {
	has := p.book.HasHomeworkOn(ctx, group, day)
	if has.Err != nil || !has.Value {
		return nil
	}

	replies, err := p.collect(ctx, group, []time.Time{day})
	if err != nil {
		p.logger.Debug("Homework for schedule day skipped", zap.String("group", group), zap.Error(err))
		return nil
	}
	return sendAll(ctx, out, replies)
}
