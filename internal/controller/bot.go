package controller

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/flows"
	"github.com/Freeeeeet/finashka_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/Freeeeeet/finashka_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Кнопка inline-меню без payload присылает подпись с этим префиксом
const textCallbackPrefix = "text:"

// BotController граница с Telegram: апдейты в Inbound, Reply в сообщения
type BotController struct {
	router *Router
	logger *zap.Logger
}

func NewBotController(router *Router, logger *zap.Logger) *BotController {
	return &BotController{
		router: router,
		logger: logger,
	}
}

// HandleUpdate обработчик по умолчанию для bot.WithDefaultHandler
func (c *BotController) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		out := &telegramResponder{bot: b, chatID: msg.Chat.ID, logger: c.logger}
		c.router.Dispatch(ctx, inboundFromMessage(msg), out)

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
			c.logger.Warn("Failed to answer callback", zap.String("callback_id", cq.ID), zap.Error(err))
		}

		chatID := callbackChatID(cq)
		out := &telegramResponder{bot: b, chatID: chatID, logger: c.logger}
		c.router.Dispatch(ctx, inboundFromCallback(cq, chatID), out)
	}
}

// RegisterCommands устанавливает меню команд бота
func (c *BotController) RegisterCommands(ctx context.Context, b *bot.Bot) error {
	_, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "🚀 Главное меню"},
		},
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

func inboundFromMessage(msg *models.Message) Inbound {
	in := Inbound{
		Identity: state.Identity{ChatID: msg.Chat.ID},
		SentAt:   time.Unix(int64(msg.Date), 0),
		Event: flows.Event{
			Text:        msg.Text,
			Attachments: attachmentsOf(msg),
		},
	}
	if in.Event.Text == "" {
		in.Event.Text = msg.Caption
	}
	if msg.From != nil {
		in.Identity.UserID = msg.From.ID
		in.FromBot = msg.From.IsBot
	}
	return in
}

// Время у callback не приходит, поэтому фильтр устаревших событий к нему не применяется
func inboundFromCallback(cq *models.CallbackQuery, chatID int64) Inbound {
	in := Inbound{
		Identity: state.Identity{ChatID: chatID, UserID: cq.From.ID},
		FromBot:  cq.From.IsBot,
	}
	if label, ok := strings.CutPrefix(cq.Data, textCallbackPrefix); ok {
		in.Event.Text = label
	} else {
		in.Event.Payload = cq.Data
	}
	return in
}

func callbackChatID(cq *models.CallbackQuery) int64 {
	switch {
	case cq.Message.Message != nil:
		return cq.Message.Message.Chat.ID
	case cq.Message.InaccessibleMessage != nil:
		return cq.Message.InaccessibleMessage.Chat.ID
	}
	return cq.From.ID
}

// attachmentsOf файлы с именем: документы, аудио, видео
func attachmentsOf(msg *models.Message) []model.Attachment {
	var atts []model.Attachment
	if d := msg.Document; d != nil {
		atts = append(atts, model.Attachment{FileID: d.FileID, FileName: d.FileName})
	}
	if a := msg.Audio; a != nil {
		atts = append(atts, model.Attachment{FileID: a.FileID, FileName: a.FileName})
	}
	if v := msg.Video; v != nil {
		atts = append(atts, model.Attachment{FileID: v.FileID, FileName: v.FileName})
	}
	return atts
}

// replyMarkup меню только из текстовых кнопок становится обычной клавиатурой,
// меню с payload становится inline-клавиатурой
func replyMarkup(m *keyboard.Menu) models.ReplyMarkup {
	if m == nil || len(m.Rows) == 0 {
		return nil
	}

	if !m.HasPayloads() {
		rows := make([][]models.KeyboardButton, 0, len(m.Rows))
		for _, row := range m.Rows {
			buttons := make([]models.KeyboardButton, 0, len(row))
			for _, btn := range row {
				buttons = append(buttons, models.KeyboardButton{Text: btn.Label})
			}
			rows = append(rows, buttons)
		}
		return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(m.Rows))
	for _, row := range m.Rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			data := btn.Payload
			if data == "" {
				data = textCallbackPrefix + btn.Label
			}
			buttons = append(buttons, models.InlineKeyboardButton{Text: btn.Label, CallbackData: data})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

type telegramResponder struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func (r *telegramResponder) Send(ctx context.Context, reply flows.Reply) error {
	params := &bot.SendMessageParams{
		ChatID: r.chatID,
		Text:   reply.Text,
	}
	if markup := replyMarkup(reply.Menu); markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := r.bot.SendMessage(ctx, params); err != nil {
		r.logger.Error("Failed to send message",
			zap.Int64("chat_id", r.chatID),
			zap.Error(err))
		return err
	}
	return nil
}
