package formatting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/model"
)

// Занятия без времени начала уходят в конец дня
const missingBeginSentinel = 1_000_000_000

// GroupDay форматирует расписание группы на один день.
// Занятия должны быть уже отфильтрованы по дате.
func GroupDay(lessons []model.Lesson, groupName string) string {
	if len(lessons) == 0 {
		return fmt.Sprintf("Расписание для %s на этот день пустое.", groupName)
	}

	sorted := sortByBegin(lessons)

	dateStr := sorted[0].Date
	header := fmt.Sprintf("Расписание %s на %s:", groupName, dateStr)
	if d, err := time.Parse(ISODateLayout, dateStr); err == nil {
		header = fmt.Sprintf("Расписание %s на %s (%s):", groupName, WeekdayAccusative(d.Weekday()), dateStr)
	}

	lines := []string{header, ""}

	for idx, l := range sorted {
		begin := strings.TrimSpace(l.Begin)
		end := strings.TrimSpace(l.End)

		// Пустая строка отделяет блоки с разным временем начала
		if idx > 0 && begin != strings.TrimSpace(sorted[idx-1].Begin) {
			lines = append(lines, "")
		}

		line := fmt.Sprintf("%s %s.", periodPrefix(begin, idx), timeRange(begin, end))
		if right := teachersAndRoom(l); right != "" {
			line += " " + right + "."
		}
		lines = append(lines, line)

		if subj := strings.TrimSpace(l.Discipline); subj != "" {
			if kind := kindHint(l.KindOfWork); kind != "" {
				lines = append(lines, fmt.Sprintf("    %s (%s).", subj, kind))
			} else {
				lines = append(lines, fmt.Sprintf("    %s.", subj))
			}
		}

		if idx+1 < len(sorted) {
			if gap, ok := breakMinutes(end, sorted[idx+1].Begin); ok {
				lines = append(lines, fmt.Sprintf("    Перерыв %d минут.", gap))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// TeacherDay форматирует расписание преподавателя на один день
func TeacherDay(lessons []model.Lesson, teacherName string) string {
	if len(lessons) == 0 {
		return fmt.Sprintf("Расписание для %s на этот день пустое.", teacherName)
	}

	sorted := sortByBegin(lessons)

	lines := []string{fmt.Sprintf("Расписание для %s на %s:", teacherName, sorted[0].Date), ""}

	for idx, l := range sorted {
		begin := strings.TrimSpace(l.Begin)
		end := strings.TrimSpace(l.End)

		line := periodPrefix(begin, idx) + " "
		if begin != "" || end != "" {
			line += begin + "-" + end + " "
		}
		line += strings.TrimSpace(l.Discipline)
		if right := joinPresent(", ", l.Group, l.Auditorium); right != "" {
			line += " (" + right + ")"
		}
		lines = append(lines, strings.TrimRight(line, " "))

		if idx != len(sorted)-1 {
			lines = append(lines, "")
		}
	}

	if email := firstEmail(sorted); email != "" {
		lines = append(lines, "", "Email: "+email)
	}

	return strings.Join(lines, "\n")
}

// FilterByDate оставляет занятия на указанную дату (YYYY-MM-DD)
func FilterByDate(lessons []model.Lesson, isoDate string) []model.Lesson {
	var out []model.Lesson
	for _, l := range lessons {
		if l.Date == isoDate {
			out = append(out, l)
		}
	}
	return out
}

// GroupByDate раскладывает занятия по датам; даты возвращаются по возрастанию.
// Записи без даты пропускаются.
func GroupByDate(lessons []model.Lesson) ([]string, map[string][]model.Lesson) {
	byDate := make(map[string][]model.Lesson)
	for _, l := range lessons {
		if l.Date == "" {
			continue
		}
		byDate[l.Date] = append(byDate[l.Date], l)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return dates, byDate
}

func sortByBegin(lessons []model.Lesson) []model.Lesson {
	sorted := make([]model.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return beginKey(sorted[i]) < beginKey(sorted[j])
	})
	return sorted
}

func beginKey(l model.Lesson) int {
	if m, ok := MinutesSinceMidnight(l.Begin); ok {
		return m
	}
	return missingBeginSentinel
}

// periodPrefix номер пары по звонку, иначе позиция в дне
func periodPrefix(begin string, idx int) string {
	n, ok := ClassPeriodNumber(begin)
	if !ok {
		n = idx + 1
	}
	return NumeralGlyph(n)
}

func timeRange(begin, end string) string {
	if begin != "" && end != "" {
		return begin + "-" + end
	}
	if begin != "" {
		return begin
	}
	return end
}

func teachersAndRoom(l model.Lesson) string {
	teachers := strings.Join(l.Teachers, " / ")
	room := strings.TrimSpace(l.Auditorium)

	switch {
	case teachers != "" && room != "":
		return teachers + " — " + room
	case teachers != "":
		return teachers
	default:
		return room
	}
}

func kindHint(kind string) string {
	kind = strings.TrimSpace(kind)
	low := strings.ToLower(kind)
	switch {
	case strings.Contains(low, "семинар"):
		return "семинар"
	case strings.Contains(low, "лекц"):
		return "лекция"
	default:
		return kind
	}
}

func breakMinutes(end, nextBegin string) (int, bool) {
	e, ok := MinutesSinceMidnight(end)
	if !ok {
		return 0, false
	}
	nb, ok := MinutesSinceMidnight(nextBegin)
	if !ok {
		return 0, false
	}
	if gap := nb - e; gap > 0 {
		return gap, true
	}
	return 0, false
}

func firstEmail(lessons []model.Lesson) string {
	for _, l := range lessons {
		if l.Email != "" {
			return l.Email
		}
	}
	return ""
}

func joinPresent(sep string, parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, sep)
}
