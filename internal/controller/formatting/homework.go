package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/finashka_bot/internal/model"
)

// HomeworkItem форматирует одну запись ДЗ на дату humanDay (DD.MM.YYYY)
func HomeworkItem(hw model.Homework, humanDay string) string {
	subject := strings.TrimSpace(hw.Subject)
	if subject == "" {
		subject = "Предмет"
	}
	deadline := strings.TrimSpace(hw.Deadline)
	if deadline == "" {
		deadline = humanDay
	}

	lines := []string{
		"Домашняя работа на " + humanDay,
		"Предмет: " + subject,
		"Дедлайн: " + deadline,
	}
	if task := strings.TrimSpace(hw.Task); task != "" {
		lines = append(lines, "Задание: "+task)
	}
	for _, fn := range hw.Files {
		lines = append(lines, "Файл: "+fn)
	}

	return strings.Join(lines, "\n")
}

// HomeworkAdded подтверждение сохранённого черновика
func HomeworkAdded(d *model.HomeworkDraft) string {
	lines := []string{
		"✅ Домашняя работа добавлена.",
		"Группа: " + d.Group,
		"Предмет: " + strings.TrimSpace(d.Subject),
		"Дедлайн: " + HumanDate(d.Deadline),
		"Задание: " + strings.TrimSpace(d.Task),
	}
	if len(d.Files) > 0 {
		lines = append(lines, "Файлы:")
		lines = append(lines, d.Files...)
	}
	return strings.Join(lines, "\n")
}

// NoLessonsOn сообщение преподавательского расписания без занятий
func NoLessonsOn(isoDay string) string {
	return fmt.Sprintf("Занятий не найдено на %s.", isoDay)
}

func NoLessonsBetween(isoStart, isoEnd string) string {
	return fmt.Sprintf("Занятий не найдено в диапазоне %s — %s.", isoStart, isoEnd)
}
