package flows

// Тексты ответов
const (
	msgWelcome = "Привет! 👋\n" +
		"Я — помощник студентов твоего университета. " +
		"Могу напоминать о парах и дз, хранить расписание и показывать дз других групп.\n\n" +
		"Выбери одну из опций ниже:"
	msgScheduleRoot = "Раздел «Расписание». Что показать?"
	msgHomeworkRoot = "📅 Вы хотите посмотреть или добавить домашнюю работу?"
	msgMail         = "Здесь будет модуль проверки почты ✉️"

	msgAskDate      = "Введите дату в формате YYYY-MM-DD или DD.MM.YYYY:"
	msgBadDate      = "Не понял дату. Пример: 2025-11-07 или 07.11.2025. Попробуйте ещё раз:"
	msgNextAction   = "Выберите дальнейшее действие:"
	msgChoosePeriod = "Выберите период:"
	msgTimetableErr = "Ошибка при запросе расписания: %v"

	msgAskGroup        = "Введите название группы (например: БИ25-6):"
	msgSearchingGroup  = "Ищу группу…"
	msgGroupNotFound   = "Мы не нашли такую группу. Попробуйте ввести название ещё раз:"
	msgGroupSelected   = "Группа: %s\nВыберите период:"
	msgGroupNotChosen  = "Группа не выбрана. Введите название группы:"
	msgGroupSearchErr  = "Ошибка при запросе группы: %v"
	defaultGroupName   = "Группа"
	defaultTeacherName = "Преподаватель"

	msgAskSurname       = "Введите фамилию преподавателя (например: Неизвестный):"
	msgSearchingTeacher = "Ищу преподавателя…"
	msgTeacherNotFound  = "Мы не нашли такого преподавателя. Попробуйте ввести фамилию ещё раз:"
	msgTeacherNotChosen = "Не выбран преподаватель. Введите фамилию преподавателя:"
	msgTeacherSearchErr = "Ошибка при запросе преподавателя: %v"

	msgHwAskGroup       = "Введите номер группы (например: БИ25-6):"
	msgHwGroupEntered   = "Вы ввели номер группы: %s"
	msgHwGroupNotChosen = "Группа не выбрана. Введите номер группы:"
	msgHwAskDate        = "Введите дату (YYYY-MM-DD или DD.MM.YYYY):"
	msgHwBadDate        = "Не понял дату. Пример: 2025-12-12 или 12.12.2025. Попробуйте ещё раз:"
	msgHwUnknownGroup   = "Для этой группы ДЗ пока не добавляли."
	msgHwNothingOn      = "На %s ничего не найдено."
	msgHwFile           = "📎 Файл: %s"
	msgHwLookupErr      = "Ошибка при запросе ДЗ: %v"

	msgAddAskGroup      = "Введите номер группы, для которой добавляете ДЗ (например: БИ25-6):"
	msgAddAskGroupShort = "Введите номер группы, для которой добавляете ДЗ:"
	msgAddAskSubject    = "Группа: %s\nВведите название предмета:"
	msgAddAskDeadline   = "Введите дедлайн (YYYY-MM-DD или DD.MM.YYYY):"
	msgAddAskTask       = "Опишите задание (текст одним сообщением):"
	msgAddAskFiles      = "Прикрепите сюда файлы при их наличии.\nЕсли файлов нет — нажмите кнопку ниже:"
	msgAddFilesTaken    = "Принято файлов: %d. Нажмите «Нет файлов (сохранить)», чтобы записать ДЗ."
	msgAddFilesHint     = "Прикрепите файлы (если есть) или нажмите «Нет файлов (сохранить)»."
	msgAddIncomplete    = "Похоже, не вся информация собрана. Попробуйте ещё раз / начните заново."
	msgAddSaveErr       = "Не удалось сохранить ДЗ."
	msgAddNextAction    = "Выберите следующее действие:"
)
