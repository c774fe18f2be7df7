package flows

import "github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"

// Welcome приветствие с главным меню
func Welcome() Reply {
	return newReply(msgWelcome, keyboard.MainMenu())
}

// ScheduleRoot корень раздела расписания
func ScheduleRoot() Reply {
	return newReply(msgScheduleRoot, keyboard.ScheduleRoot())
}

// HomeworkRoot корень раздела ДЗ
func HomeworkRoot() Reply {
	return newReply(msgHomeworkRoot, keyboard.HomeworkRoot())
}

// MailStub раздел почты пока не реализован
func MailStub() Reply {
	return newReply(msgMail)
}
