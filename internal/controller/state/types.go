package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/model"
)

// ScheduleMode шаг диалога расписания. Группы и преподаватели делят одно поле,
// поэтому одновременно активен только один из двух сценариев.
type ScheduleMode int

const (
	ScheduleIdle ScheduleMode = iota

	GroupAskName
	GroupSelected
	GroupAskDate

	TeacherAskSurname
	TeacherSelected
	TeacherAskDate
)

var scheduleModeNames = map[ScheduleMode]string{
	ScheduleIdle:      "idle",
	GroupAskName:      "group_ask_name",
	GroupSelected:     "group_selected",
	GroupAskDate:      "group_ask_date",
	TeacherAskSurname: "teacher_ask_surname",
	TeacherSelected:   "teacher_selected",
	TeacherAskDate:    "teacher_ask_date",
}

func (m ScheduleMode) String() string {
	if s, ok := scheduleModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// IsGroup активен сценарий расписания группы
func (m ScheduleMode) IsGroup() bool {
	return m == GroupAskName || m == GroupSelected || m == GroupAskDate
}

// IsTeacher активен сценарий расписания преподавателя
func (m ScheduleMode) IsTeacher() bool {
	return m == TeacherAskSurname || m == TeacherSelected || m == TeacherAskDate
}

// HomeworkMode шаг диалога домашних заданий: просмотр или добавление
type HomeworkMode int

const (
	HomeworkIdle HomeworkMode = iota

	WatchAskGroup
	WatchSelected
	WatchAskDate

	AddAskGroup
	AddAskSubject
	AddAskDeadline
	AddAskTask
	AddWaitFiles
)

var homeworkModeNames = map[HomeworkMode]string{
	HomeworkIdle:   "idle",
	WatchAskGroup:  "watch_ask_group",
	WatchSelected:  "watch_selected",
	WatchAskDate:   "watch_ask_date",
	AddAskGroup:    "add_ask_group",
	AddAskSubject:  "add_ask_subject",
	AddAskDeadline: "add_ask_deadline",
	AddAskTask:     "add_ask_task",
	AddWaitFiles:   "add_wait_files",
}

func (m HomeworkMode) String() string {
	if s, ok := homeworkModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Adding идёт сбор черновика ДЗ
func (m HomeworkMode) Adding() bool {
	return m >= AddAskGroup && m <= AddWaitFiles
}

// Schedule данные диалога расписания
type Schedule struct {
	Mode ScheduleMode

	GroupID   string
	GroupName string

	TeacherID   string
	TeacherName string
}

// Homework данные диалога ДЗ. Живут отдельно от Schedule.
type Homework struct {
	Mode  HomeworkMode
	Group string
	Draft *model.HomeworkDraft
}

// Conversation состояние одного собеседника.
// Обработчик события держит Lock на всё время обработки.
type Conversation struct {
	mu sync.Mutex

	Key      Key
	Schedule Schedule
	Homework Homework

	lastActive time.Time
}

func (c *Conversation) Lock()   { c.mu.Lock() }
func (c *Conversation) Unlock() { c.mu.Unlock() }

// Touch отмечает активность; вызывается под Lock
func (c *Conversation) Touch(now time.Time) {
	c.lastActive = now
}

// LastActive время последнего события; вызывается под Lock
func (c *Conversation) LastActive() time.Time {
	return c.lastActive
}

// ResetSchedule возвращает диалог расписания в начало
func (c *Conversation) ResetSchedule() {
	c.Schedule = Schedule{}
}

// ResetHomework сбрасывает просмотр и черновик ДЗ
func (c *Conversation) ResetHomework() {
	c.Homework = Homework{}
}

// ResetAll полный сброс, как при /start
func (c *Conversation) ResetAll() {
	c.ResetSchedule()
	c.ResetHomework()
}
