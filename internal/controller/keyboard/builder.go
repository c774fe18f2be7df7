package keyboard

// Button подпись и необязательный payload.
// Кнопка без payload при нажатии присылает свою подпись как текст.
type Button struct {
	Label   string
	Payload string
}

// Menu ряды кнопок, без привязки к платформе
type Menu struct {
	Rows [][]Button
}

// HasPayloads есть ли в меню хотя бы одна кнопка с payload
func (m *Menu) HasPayloads() bool {
	if m == nil {
		return false
	}
	for _, row := range m.Rows {
		for _, b := range row {
			if b.Payload != "" {
				return true
			}
		}
	}
	return false
}

// Builder собирает меню по рядам
type Builder struct {
	rows [][]Button
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]Button, 0),
	}
}

// Row добавляет ряд; пустой ряд пропускается
func (b *Builder) Row(buttons ...Button) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

func (b *Builder) Build() *Menu {
	return &Menu{Rows: b.rows}
}

// Text кнопка, которая отправляет свою подпись
func Text(label string) Button {
	return Button{Label: label}
}

// Action кнопка с payload
func Action(label, payload string) Button {
	return Button{Label: label, Payload: payload}
}
