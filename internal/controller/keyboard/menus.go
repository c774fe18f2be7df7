package keyboard

// Подписи кнопок. Их же пользователь может набрать текстом.
const (
	LabelSchedule = "Расписание"
	LabelHomework = "Домашняя работа"
	LabelMail     = "Почта"
	LabelMainMenu = "⬅️ В меню"

	LabelGroups       = "Группы"
	LabelTeachers     = "Преподаватели"
	LabelScheduleRoot = "⬅️ В расписание"

	LabelToday         = "Сегодня"
	LabelTomorrow      = "Завтра"
	LabelThisWeek      = "Эта неделя"
	LabelNextWeek      = "Следующая неделя"
	LabelNextWeekShort = "След неделя"
	LabelPickDate      = "Выбрать дату"
	LabelChangeGroup   = "Сменить группу"
	LabelChangeTeacher = "Сменить преподавателя"

	LabelWatch   = "Посмотреть"
	LabelAdd     = "Добавить"
	LabelNoFiles = "Нет файлов (сохранить)"
)

// Payload кнопок
const (
	PayloadMainMenu     = "menu:home"
	PayloadScheduleRoot = "sched:root"
	PayloadGroups       = "sched:groups"
	PayloadTeachers     = "sched:teachers"

	PayloadHomeworkWatch   = "hw:watch"
	PayloadHomeworkAdd     = "hw:add"
	PayloadHomeworkAddMore = "hw:add_more"
	PayloadHomeworkNoFiles = "hw:nofile"

	PayloadHomeworkToday       = "hw:today"
	PayloadHomeworkTomorrow    = "hw:tomorrow"
	PayloadHomeworkThisWeek    = "hw:thisweek"
	PayloadHomeworkNextWeek    = "hw:nextweek"
	PayloadHomeworkPickDate    = "hw:pickdate"
	PayloadHomeworkChangeGroup = "hw:change_group"
)

// MainMenu главное меню
func MainMenu() *Menu {
	return NewBuilder().
		Row(Text(LabelSchedule), Text(LabelHomework)).
		Build()
}

// ScheduleRoot выбор между группами и преподавателями
func ScheduleRoot() *Menu {
	return NewBuilder().
		Row(Action(LabelGroups, PayloadGroups), Action(LabelTeachers, PayloadTeachers)).
		Row(Text(LabelMainMenu)).
		Build()
}

// GroupRange периоды для расписания группы
func GroupRange() *Menu {
	return NewBuilder().
		Row(Text(LabelToday), Text(LabelTomorrow)).
		Row(Text(LabelThisWeek), Text(LabelNextWeek)).
		Row(Text(LabelPickDate), Text(LabelChangeGroup)).
		Row(Action(LabelMainMenu, PayloadMainMenu)).
		Build()
}

// TeacherRange периоды для расписания преподавателя
func TeacherRange() *Menu {
	return NewBuilder().
		Row(Text(LabelToday), Text(LabelTomorrow)).
		Row(Text(LabelThisWeek), Text(LabelNextWeek)).
		Row(Text(LabelPickDate), Text(LabelChangeTeacher)).
		Row(Action(LabelScheduleRoot, PayloadScheduleRoot)).
		Build()
}

// HomeworkRoot посмотреть или добавить ДЗ
func HomeworkRoot() *Menu {
	return NewBuilder().
		Row(Action(LabelWatch, PayloadHomeworkWatch), Action(LabelAdd, PayloadHomeworkAdd)).
		Row(Action(LabelMainMenu, PayloadMainMenu)).
		Build()
}

// HomeworkRange периоды просмотра ДЗ
func HomeworkRange() *Menu {
	return NewBuilder().
		Row(Action(LabelToday, PayloadHomeworkToday), Action(LabelTomorrow, PayloadHomeworkTomorrow)).
		Row(Action(LabelThisWeek, PayloadHomeworkThisWeek), Action(LabelNextWeekShort, PayloadHomeworkNextWeek)).
		Row(Action(LabelPickDate, PayloadHomeworkPickDate), Action(LabelChangeGroup, PayloadHomeworkChangeGroup)).
		Row(Action(LabelMainMenu, PayloadMainMenu)).
		Build()
}

// HomeworkNoFiles завершение сбора файлов
func HomeworkNoFiles() *Menu {
	return NewBuilder().
		Row(Action(LabelNoFiles, PayloadHomeworkNoFiles)).
		Build()
}

// HomeworkAfterAdd после сохранения ДЗ
func HomeworkAfterAdd() *Menu {
	return NewBuilder().
		Row(Action(LabelAdd, PayloadHomeworkAddMore)).
		Row(Action(LabelMainMenu, PayloadMainMenu)).
		Build()
}
