package ruz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeacherNames(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want []string
	}{
		{
			name: "generic word instead of name",
			rec:  map[string]any{"fio": "Преподаватель"},
			want: nil,
		},
		{
			name: "split name parts",
			rec:  map[string]any{"surname": "Иванов", "first_name": "Пётр"},
			want: []string{"Иванов Пётр"},
		},
		{
			name: "list with case-differing duplicate",
			rec: map[string]any{
				"listOfLecturers": []any{
					map[string]any{"full_name": "Сидоров А.А."},
					map[string]any{"full_name": "сидоров а.а."},
				},
			},
			want: []string{"Сидоров А.А."},
		},
		{
			name: "slash alternatives pick the longest",
			rec:  map[string]any{"lecturer_title": "Иванов И.И. / Иванов Иван Иванович"},
			want: []string{"Иванов Иван Иванович"},
		},
		{
			name: "slash alternatives tie keeps the first",
			rec:  map[string]any{"lecturer": "Абв / Где"},
			want: []string{"Абв"},
		},
		{
			name: "generic full name falls through to parts",
			rec:  map[string]any{"full_name": "Доцент", "lastName": "Петрова", "patronymic": "Ивановна"},
			want: []string{"Петрова Ивановна"},
		},
		{
			name: "fallback single field",
			rec:  map[string]any{"teacher": "Кузнецов К.К."},
			want: []string{"Кузнецов К.К."},
		},
		{
			name: "generic fallback rejected",
			rec:  map[string]any{"lecturer": "lecturer"},
			want: nil,
		},
		{
			name: "non-string values ignored",
			rec:  map[string]any{"full_name": 42, "name": "Смирнов"},
			want: []string{"Смирнов"},
		},
		{
			name: "several lists keep order of appearance",
			rec: map[string]any{
				"listOfLecturers": []any{map[string]any{"fio": "Альфа"}},
				"teachers":        []any{map[string]any{"fio": "Бета"}, "junk", map[string]any{"fio": "альфа"}},
			},
			want: []string{"Альфа", "Бета"},
		},
		{
			name: "empty list means single record",
			rec:  map[string]any{"listOfLecturers": []any{}, "lecturer": "Орлов"},
			want: []string{"Орлов"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeacherNames(tt.rec))
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "abc", normalizeLabel("  abc "))
	assert.Equal(t, "longer", normalizeLabel("a / longer / b"))
	assert.Equal(t, "/", normalizeLabel("/"))
}
