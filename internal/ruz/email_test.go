package ruz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindEmail(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want string
	}{
		{
			name: "explicit record field",
			rec:  map[string]any{"lecturerEmail": "ivanov@fa.ru", "comment": "other@fa.ru"},
			want: "ivanov@fa.ru",
		},
		{
			name: "lecturer sub-record",
			rec: map[string]any{
				"listOfLecturers": []any{
					map[string]any{"lecturer": "Иванов"},
					map[string]any{"mail": "petrov@fa.ru"},
				},
			},
			want: "petrov@fa.ru",
		},
		{
			name: "free text scan",
			rec:  map[string]any{"note": "пишите на sidorov.a@edu.fa.ru до пятницы"},
			want: "sidorov.a@edu.fa.ru",
		},
		{
			name: "nothing email-shaped",
			rec:  map[string]any{"email": "нет", "comment": "ivanov@fa"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindEmail(tt.rec))
		})
	}
}
