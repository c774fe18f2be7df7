package ruz

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/model"
)

// Форматы дат, в которых РУЗ отдавал поле date в разное время
var lessonDateLayouts = []string{"2006-01-02", "2006.01.02", "02.01.2006"}

var (
	groupNameKeys   = []string{"group", "name", "title", "label", "full_name", "fullname"}
	teacherNameKeys = []string{"lecturer_title", "name", "full_name"}
)

// ParseLesson приводит сырую запись занятия к model.Lesson
func ParseLesson(rec map[string]any) model.Lesson {
	return model.Lesson{
		Date:       normalizeDate(pickFirst(rec, "date")),
		Begin:      pickFirst(rec, "beginLesson"),
		End:        pickFirst(rec, "endLesson"),
		Discipline: pickFirst(rec, "discipline"),
		Auditorium: pickFirst(rec, "auditorium"),
		KindOfWork: pickFirst(rec, "kindOfWork"),
		Group:      pickFirst(rec, "group"),
		Teachers:   TeacherNames(rec),
		Email:      FindEmail(rec),
	}
}

// ParseLessons разбирает список записей, пропуская элементы, которые не являются объектами
func ParseLessons(raw []any) []model.Lesson {
	lessons := make([]model.Lesson, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(map[string]any); ok {
			lessons = append(lessons, ParseLesson(rec))
		}
	}
	return lessons
}

// ParseGroupHit разбирает результат поиска группы. Если имени нет, используется запрос.
func ParseGroupHit(rec map[string]any, query string) model.SearchHit {
	name := pickFirst(rec, groupNameKeys...)
	if name == "" {
		name = query
	}
	return model.SearchHit{ID: idString(rec["id"]), Name: name}
}

// ParseTeacherHit разбирает результат поиска преподавателя
func ParseTeacherHit(rec map[string]any) model.SearchHit {
	name := pickFirst(rec, teacherNameKeys...)
	if name == "" {
		name = "Преподаватель"
	}
	return model.SearchHit{ID: idString(rec["id"]), Name: name}
}

func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		// "2025-11-07T00:00:00" и подобные
		if _, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return s[:10]
		}
	}
	for _, layout := range lessonDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return s
}

// idString JSON-числа приходят как float64, печатаем их без дробной части
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		if id == float64(int64(id)) {
			return fmt.Sprintf("%d", int64(id))
		}
		return fmt.Sprintf("%v", id)
	default:
		return fmt.Sprintf("%v", id)
	}
}
