package controller

import (
	"testing"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyMarkup(t *testing.T) {
	assert.Nil(t, replyMarkup(nil))

	reply, ok := replyMarkup(keyboard.MainMenu()).(*models.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, keyboard.LabelSchedule, reply.Keyboard[0][0].Text)
	assert.True(t, reply.ResizeKeyboard)

	inline, ok := replyMarkup(keyboard.ScheduleRoot()).(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, keyboard.PayloadGroups, inline.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "text:"+keyboard.LabelMainMenu, inline.InlineKeyboard[1][0].CallbackData)
}

func TestInboundFromCallback(t *testing.T) {
	cq := &models.CallbackQuery{ID: "1", From: models.User{ID: 20}, Data: "text:Сегодня"}
	in := inboundFromCallback(cq, 10)
	assert.Equal(t, "Сегодня", in.Event.Text)
	assert.Empty(t, in.Event.Payload)
	assert.True(t, in.SentAt.IsZero())

	cq.Data = keyboard.PayloadHomeworkToday
	in = inboundFromCallback(cq, 10)
	assert.Equal(t, keyboard.PayloadHomeworkToday, in.Event.Payload)
	assert.Equal(t, int64(10), in.Identity.ChatID)
	assert.Equal(t, int64(20), in.Identity.UserID)
}

func TestInboundFromMessage(t *testing.T) {
	msg := &models.Message{
		Date:     int(time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC).Unix()),
		Chat:     models.Chat{ID: 10},
		From:     &models.User{ID: 20, IsBot: true},
		Caption:  "задание",
		Document: &models.Document{FileID: "doc", FileName: "task.pdf"},
	}

	in := inboundFromMessage(msg)
	assert.Equal(t, "задание", in.Event.Text)
	assert.True(t, in.FromBot)
	assert.Equal(t, []model.Attachment{{FileID: "doc", FileName: "task.pdf"}}, in.Event.Attachments)
	assert.Equal(t, 2025, in.SentAt.UTC().Year())
}
