package model

// Lesson одно занятие из расписания РУЗ, уже приведённое к единому виду.
// Разные написания полей ответа API разбираются в пакете ruz.
type Lesson struct {
	Date       string   `json:"date"` // YYYY-MM-DD, если дату удалось разобрать, иначе как пришла
	Begin      string   `json:"begin"`
	End        string   `json:"end"`
	Discipline string   `json:"discipline"`
	Auditorium string   `json:"auditorium"`
	KindOfWork string   `json:"kind_of_work"`
	Group      string   `json:"group"`
	Teachers   []string `json:"teachers"`
	Email      string   `json:"email"` // первый найденный в записи email преподавателя
}

// SearchHit результат поиска группы или преподавателя
type SearchHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
