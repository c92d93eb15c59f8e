// Package bot wraps the Telegram Bot API as the message transport for
// AquaBalance. It routes commands and plain text to the tracker core and
// sends the returned reply text back to the chat.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akaretnikov/aquabalance/internal/tracker"
)

// DefaultUpdateTimeout is the long-poll timeout in seconds.
const DefaultUpdateTimeout = 60

const welcomeMessage = "Hi! I track your daily water and calorie balance.\n" +
	"Use /set_profile to set up your profile."

const retryMessage = "Something went wrong on my side. Please try again."

// Bot runs the Telegram long-poll loop and dispatches updates.
type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *tracker.Tracker

	// dispatch serializes processing per user id in arrival order, so each
	// message sees the state left by the previous one. Distinct users run
	// concurrently.
	dispatch *dispatcher
}

// New creates a Bot authorized with the given token.
func New(token string, tr *tracker.Tracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	slog.Info("Telegram bot authorized", "username", api.Self.UserName)
	return &Bot{
		api:      api,
		tracker:  tr,
		dispatch: newDispatcher(),
	}, nil
}

// Start consumes updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = DefaultUpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	slog.Info("Telegram bot update loop started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			slog.Info("Telegram bot update loop stopped")
			return nil
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			msg := update.Message
			// Enqueue on the receive loop so same-user messages keep
			// their arrival order.
			b.dispatch.enqueue(msg.From.ID, func() {
				b.handleMessage(ctx, msg)
			})
		}
	}
}

// handleMessage routes one inbound message through the tracker.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	slog.Info("Telegram message received", "userID", userID, "username", msg.From.UserName, "text", msg.Text)

	var reply string
	var err error

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			reply = welcomeMessage
		case "set_profile":
			reply, err = b.tracker.StartSetup(ctx, userID)
		case "cancel":
			reply, err = b.tracker.CancelSetup(ctx, userID)
		case "log_water":
			reply, err = b.tracker.LogWater(ctx, userID, msg.CommandArguments())
		case "log_food":
			reply, err = b.tracker.LogFood(ctx, userID, msg.CommandArguments())
		case "log_workout":
			reply, err = b.tracker.LogWorkout(ctx, userID, msg.CommandArguments())
		case "check_progress":
			reply, err = b.tracker.CheckProgress(ctx, userID)
		default:
			reply = "Unknown command. Try /set_profile, /log_water, /log_food, /log_workout or /check_progress."
		}
	} else {
		reply, err = b.tracker.HandleMessage(ctx, userID, msg.Text)
	}

	if err != nil {
		slog.Error("Tracker failed to handle message", "error", err, "userID", userID)
		reply = retryMessage
	}
	if reply == "" {
		return
	}
	b.send(msg.Chat.ID, reply)
}

// send delivers reply text to a chat.
func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("Failed to send Telegram message", "error", err, "chatID", chatID)
	}
}
