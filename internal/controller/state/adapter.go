package state

import (
	"strconv"
	"strings"
)

// Key канонический ключ собеседника
type Key string

// GlobalKey общий ключ для событий без идентификаторов
const GlobalKey Key = "global"

// Identity идентификаторы, которые платформа передала с событием.
// Нулевое значение поля означает, что его нет.
type Identity struct {
	ChatID         int64
	UserID         int64
	PeerID         int64
	DialogID       int64
	ConversationID int64
}

// KeyFor собирает ключ из присутствующих идентификаторов в фиксированном порядке:
// "chat_id=1|user_id=2"
func KeyFor(id Identity) Key {
	fields := []struct {
		name  string
		value int64
	}{
		{"chat_id", id.ChatID},
		{"user_id", id.UserID},
		{"peer_id", id.PeerID},
		{"dialog_id", id.DialogID},
		{"conversation_id", id.ConversationID},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != 0 {
			parts = append(parts, f.name+"="+strconv.FormatInt(f.value, 10))
		}
	}

	if len(parts) == 0 {
		return GlobalKey
	}
	return Key(strings.Join(parts, "|"))
}
