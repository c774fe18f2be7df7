package formatting

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPeriodTolerance допустимое отклонение начала пары от звонка, в минутах
	DefaultPeriodTolerance = 25

	HumanDateLayout = "02.01.2006"
	ISODateLayout   = "2006-01-02"
)

// Начала пар по звонкам, по порядку
var classPeriodStarts = []string{"08:30", "10:15", "12:00", "13:50", "15:35", "17:20", "19:05"}

var numeralGlyphs = map[int]string{
	0: "0️⃣", 1: "1️⃣", 2: "2️⃣", 3: "3️⃣", 4: "4️⃣", 5: "5️⃣",
	6: "6️⃣", 7: "7️⃣", 8: "8️⃣", 9: "9️⃣", 10: "🔟",
}

// Дни недели в винительном падеже ("на среду"), индекс time.Weekday
var weekdayAccusative = [7]string{
	"воскресенье",
	"понедельник",
	"вторник",
	"среду",
	"четверг",
	"пятницу",
	"субботу",
}

// Форматы пользовательского ввода даты, проверяются по порядку
var userDateLayouts = []string{"2006-1-2", "2.1.2006"}

// MinutesSinceMidnight разбирает "ЧЧ:ММ"
func MinutesSinceMidnight(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ClassPeriodNumber возвращает номер пары (с 1) по времени начала
func ClassPeriodNumber(begin string) (int, bool) {
	return ClassPeriodNumberWithin(begin, DefaultPeriodTolerance)
}

// ClassPeriodNumberWithin ищет ближайший звонок; при равном расстоянии побеждает более ранний
func ClassPeriodNumberWithin(begin string, toleranceMinutes int) (int, bool) {
	bmin, ok := MinutesSinceMidnight(begin)
	if !ok {
		return 0, false
	}

	bestIdx, bestDiff := -1, 0
	for i, start := range classPeriodStarts {
		rmin, ok := MinutesSinceMidnight(start)
		if !ok {
			continue
		}
		diff := bmin - rmin
		if diff < 0 {
			diff = -diff
		}
		if bestIdx < 0 || diff < bestDiff {
			bestIdx, bestDiff = i, diff
		}
	}

	if bestIdx >= 0 && bestDiff <= toleranceMinutes {
		return bestIdx + 1, true
	}
	return 0, false
}

// NumeralGlyph рисует число эмодзи-цифрами. Больше 10 поразрядно.
func NumeralGlyph(n int) string {
	if g, ok := numeralGlyphs[n]; ok {
		return g
	}

	var b strings.Builder
	for _, ch := range strconv.Itoa(n) {
		if ch >= '0' && ch <= '9' {
			b.WriteString(numeralGlyphs[int(ch-'0')])
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// WeekdayAccusative возвращает день недели для фразы "на <день>"
func WeekdayAccusative(d time.Weekday) string {
	return weekdayAccusative[d]
}

// HumanDate форматирует дату как DD.MM.YYYY
func HumanDate(t time.Time) string {
	return t.Format(HumanDateLayout)
}

// ISODate форматирует дату как YYYY-MM-DD
func ISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// ParseUserDate принимает YYYY-MM-DD или DD.MM.YYYY
func ParseUserDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range userDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Day обрезает время до полуночи в той же зоне
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekBounds возвращает понедельник и воскресенье недели, в которую попадает день
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
