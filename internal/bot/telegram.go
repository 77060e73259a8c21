package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, tuningService *service.TuningService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	t := &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}
	t.handler = NewHandler(tuningService, t.SendMessage)
	return t, nil
}

// Start polls for updates until ctx is cancelled. Commands from chats other
// than the configured one are ignored.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName, "chat_id", t.chatID)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			msg := update.Message
			if msg == nil || !msg.IsCommand() {
				continue
			}
			if t.chatID != 0 && msg.Chat.ID != t.chatID {
				slog.Warn("Ignoring command from unknown chat", "chat_id", msg.Chat.ID, "command", msg.Command())
				continue
			}
			t.send(t.handler.HandleCommand(ctx, update))
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts markdown text to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return errors.New("telegram chat ID not set")
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return t.send(msg)
}

func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Error sending message", "chat_id", msg.ChatID, "error", err)
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
