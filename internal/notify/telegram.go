// Package notify delivers leave workflow events to a Telegram chat.
package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/chronos/internal/models"
	"gopkg.in/telebot.v4"
)

const dateLayout = "2006-01-02"

// Notifier publishes leave workflow events to an external channel.
type Notifier interface {
	LeaveRequested(employeeCode, name string, leave models.Leave)
	LeaveDecided(record models.LeaveRecord)
}

// Nop is a Notifier that discards every event.
type Nop struct{}

// LeaveRequested implements Notifier and does nothing.
func (Nop) LeaveRequested(string, string, models.Leave) {}

// LeaveDecided implements Notifier and does nothing.
func (Nop) LeaveDecided(models.LeaveRecord) {}

// Telegram sends leave events to a single chat via a Telegram bot.
type Telegram struct {
	bot    *telebot.Bot
	log    *slog.Logger
	chatID int64
}

// New creates a Notifier for the given bot token and chat. An empty token
// disables notifications and returns a Nop notifier.
func New(log *slog.Logger, token string, chatID int64) (Notifier, error) {
	if token == "" {
		log.Info("Telegram notifications are disabled")
		return Nop{}, nil
	}

	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return &Telegram{bot: bot, log: log, chatID: chatID}, nil
}

// LeaveRequested announces a freshly submitted leave request.
func (t *Telegram) LeaveRequested(employeeCode, name string, leave models.Leave) {
	var messageBuilder strings.Builder
	messageBuilder.WriteString(fmt.Sprintf("📅 **Leave request** from %s (`%s`)\n\n", name, employeeCode))
	messageBuilder.WriteString(fmt.Sprintf("**Period**: %s to %s (%d days)\n",
		leave.StartDate.Format(dateLayout),
		leave.EndDate.Format(dateLayout),
		models.LeaveDuration(leave.StartDate, leave.EndDate)))
	if leave.Reason != "" {
		messageBuilder.WriteString(fmt.Sprintf("**Reason**: %s\n", leave.Reason))
	}

	t.send(messageBuilder.String())
}

// LeaveDecided announces the outcome of a leave request.
func (t *Telegram) LeaveDecided(record models.LeaveRecord) {
	icon := "✅"
	if record.Status == models.LeaveRejected {
		icon = "❌"
	}

	var messageBuilder strings.Builder
	messageBuilder.WriteString(fmt.Sprintf("%s **Leave %s** for %s (`%s`)\n\n",
		icon, strings.ToLower(record.Status), record.Name, record.EmployeeID))
	messageBuilder.WriteString(fmt.Sprintf("**Period**: %s to %s\n",
		record.StartDate.Format(dateLayout),
		record.EndDate.Format(dateLayout)))

	t.send(messageBuilder.String())
}

func (t *Telegram) send(message string) {
	go func() {
		if _, err := t.bot.Send(telebot.ChatID(t.chatID), message, telebot.ModeMarkdown); err != nil {
			t.log.Warn("Failed to send leave notification", "chat_id", t.chatID, "error", err)
		}
	}()
}
