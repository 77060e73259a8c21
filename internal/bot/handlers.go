package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/service"
)

const helpText = "Available commands:\n" +
	"/status - Show the last sweep and whether one is running\n" +
	"/best <horizon> - Best config for ros, week_1_5, week_6_9, week_10_13 or week_14_17\n" +
	"/player <name> - Look up a player's projection\n" +
	"/sweep - Start an accuracy sweep now"

type Handler struct {
	tuningService *service.TuningService
	notify        func(string) error
}

// NewHandler builds a command handler. notify receives the report of sweeps
// started from chat once they finish.
func NewHandler(tuningService *service.TuningService, notify func(string) error) *Handler {
	return &Handler{tuningService: tuningService, notify: notify}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the tuning bot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "status":
		msg.Text = h.tuningService.GetStatus()
	case "best":
		h.handleBest(&msg, args)
	case "player":
		h.handlePlayer(&msg, args)
	case "sweep":
		h.handleSweep(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleBest(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a horizon. Usage: /best <horizon>"
		return
	}
	result, err := h.tuningService.GetBest(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error getting best config: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handlePlayer(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /player <player name>"
		return
	}
	result, err := h.tuningService.FindPlayer(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error finding player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleSweep(ctx context.Context, msg *tgbotapi.MessageConfig) {
	if h.tuningService.Running() {
		msg.Text = "A sweep is already running. Use /status to check on it."
		return
	}
	msg.Text = "Starting sweep. I'll post the results when it finishes."
	go func() {
		summary, err := h.tuningService.RunSweep(ctx, false)
		var report string
		switch {
		case errors.Is(err, service.ErrSweepRunning):
			return
		case err != nil:
			report = fmt.Sprintf("⚠️ Sweep failed: %v", err)
		default:
			report = "✅ *Sweep finished*\n\n" + service.FormatSummary(summary)
		}
		if h.notify == nil {
			return
		}
		if err := h.notify(report); err != nil {
			slog.Error("Error sending sweep report", "error", err)
		}
	}()
}
