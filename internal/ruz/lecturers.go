package ruz

import (
	"strings"
	"unicode/utf8"
)

// Общие слова-должности, которые API иногда отдаёт вместо ФИО
var genericTeacherWords = map[string]struct{}{
	"преподаватель":         {},
	"преподователь":         {},
	"teacher":               {},
	"lecturer":              {},
	"доцент":                {},
	"ассистент":             {},
	"старший преподаватель": {},
	"профессор":             {},
}

var (
	lecturerListKeys = []string{"listOfLecturers", "teachers", "lecturers", "employees"}

	fullNameKeys   = []string{"full_name", "fio_full", "display_name", "lecturer_title", "fio", "fullname"}
	surnameKeys    = []string{"surname", "last_name", "lastname", "lastName", "family"}
	firstNameKeys  = []string{"first_name", "firstname", "firstName", "given", "name_first"}
	middleNameKeys = []string{"middle_name", "middlename", "middleName", "patronymic", "secondName"}
	fallbackKeys   = []string{"lecturer", "teacher", "name", "title"}
)

// TeacherNames возвращает уникальные имена преподавателей занятия в порядке появления.
// Дубли отсекаются без учёта регистра, должности вместо ФИО отбрасываются.
func TeacherNames(rec map[string]any) []string {
	var names []string
	seen := make(map[string]struct{})

	add := func(val string) {
		val = normalizeLabel(val)
		if val == "" || isGenericTeacherWord(val) {
			return
		}
		low := strings.ToLower(val)
		if _, ok := seen[low]; ok {
			return
		}
		seen[low] = struct{}{}
		names = append(names, val)
	}

	multi := false
	for _, key := range lecturerListKeys {
		arr, ok := rec[key].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		multi = true
		for _, item := range arr {
			if t, ok := item.(map[string]any); ok {
				add(teacherName(t))
			}
		}
	}

	// Нет списка преподавателей: поля преподавателя лежат прямо в записи
	if !multi {
		add(teacherName(rec))
	}

	return names
}

// teacherName собирает ФИО из одной записи преподавателя
func teacherName(t map[string]any) string {
	fio := normalizeLabel(pickFirst(t, fullNameKeys...))
	if fio != "" && !isGenericTeacherWord(fio) {
		return fio
	}

	parts := make([]string, 0, 3)
	for _, keys := range [][]string{surnameKeys, firstNameKeys, middleNameKeys} {
		if p := pickFirst(t, keys...); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	for _, key := range fallbackKeys {
		v := normalizeLabel(pickFirst(t, key))
		if v != "" && !isGenericTeacherWord(v) {
			return v
		}
	}

	return ""
}

// normalizeLabel из "А / Б / В" выбирает самый длинный вариант (при равенстве первый)
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return s
	}

	best, bestLen := "", -1
	for _, p := range strings.Split(s, "/") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n := utf8.RuneCountInString(p); n > bestLen {
			best, bestLen = p, n
		}
	}
	if bestLen < 0 {
		return s
	}
	return best
}

func isGenericTeacherWord(s string) bool {
	_, ok := genericTeacherWords[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// pickFirst возвращает первое непустое строковое значение по списку ключей
func pickFirst(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
