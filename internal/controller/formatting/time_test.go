package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesSinceMidnight(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 7, 59} {
			got, ok := MinutesSinceMidnight(time.Date(2025, 1, 1, h, m, 0, 0, time.UTC).Format("15:04"))
			assert.True(t, ok)
			assert.Equal(t, 60*h+m, got)
		}
	}

	for _, bad := range []string{"", "0830", "08-30", "ab:cd", "08:", ":30"} {
		_, ok := MinutesSinceMidnight(bad)
		assert.False(t, ok, bad)
	}
}

func TestClassPeriodNumber(t *testing.T) {
	tests := []struct {
		begin string
		want  int
		ok    bool
	}{
		{"08:30", 1, true},
		{"08:45", 1, true},
		{"09:10", 0, false},
		{"10:15", 2, true},
		{"19:05", 7, true},
		{"21:00", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.begin, func(t *testing.T) {
			got, ok := ClassPeriodNumber(tt.begin)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassPeriodNumberWithin_TieKeepsEarlier(t *testing.T) {
	// 12:55 ровно посередине между 12:00 и 13:50
	got, ok := ClassPeriodNumberWithin("12:55", 60)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestNumeralGlyph(t *testing.T) {
	assert.Equal(t, "7️⃣", NumeralGlyph(7))
	assert.Equal(t, "🔟", NumeralGlyph(10))
	assert.Equal(t, NumeralGlyph(1)+NumeralGlyph(2), NumeralGlyph(12))
	assert.Equal(t, NumeralGlyph(1)+NumeralGlyph(1), NumeralGlyph(11))
}

func TestParseUserDate(t *testing.T) {
	for _, in := range []string{"2025-11-07", "07.11.2025", "7.11.2025", " 2025-11-7 "} {
		d, ok := ParseUserDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, "2025-11-07", ISODate(d), in)
	}

	for _, in := range []string{"", "not-a-date", "2025/11/07", "32.13.2025"} {
		_, ok := ParseUserDate(in)
		assert.False(t, ok, in)
	}
}

func TestWeekBounds(t *testing.T) {
	mon, sun := WeekBounds(time.Date(2025, 11, 9, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-11-03", ISODate(mon))
	assert.Equal(t, "2025-11-09", ISODate(sun))

	mon, _ = WeekBounds(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-11-03", ISODate(mon))
}
