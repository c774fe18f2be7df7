package model

import (
	"strings"
	"time"
)

// Homework одна запись домашнего задания в таблице группы
type Homework struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Deadline  string    `json:"deadline"` // DD.MM.YYYY
	Task      string    `json:"task"`
	Files     []string  `json:"files"`
	CreatedAt time.Time `json:"created_at"`
}

// HomeworkDraft черновик ДЗ, который собирается по шагам диалога
type HomeworkDraft struct {
	Group    string
	Subject  string
	Deadline time.Time
	Task     string
	Files    []string
}

// Complete сообщает, заполнены ли все обязательные поля
func (d *HomeworkDraft) Complete() bool {
	return strings.TrimSpace(d.Group) != "" &&
		strings.TrimSpace(d.Subject) != "" &&
		!d.Deadline.IsZero() &&
		strings.TrimSpace(d.Task) != ""
}

// Attachment вложение входящего сообщения. Байты файла бот не скачивает.
type Attachment struct {
	FileID   string
	FileName string
}
