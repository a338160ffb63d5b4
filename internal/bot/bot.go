// Package bot delivers notifications through the Telegram Bot API.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// ErrInvalidDestination is returned for a destination that is neither a chat ID nor a @channel.
var ErrInvalidDestination = errors.New("invalid destination")

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot sends text messages to Telegram chats.
type Bot struct {
	api     telegramAPI
	limiter *rate.Limiter
	log     *slog.Logger
}

// New creates a send-only Bot for the given token. No getMe call is made,
// so a bad token surfaces on the first Send.
func New(token string, timeout time.Duration, log *slog.Logger) *Bot {
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)

	return &Bot{
		api: api,
		// Telegram allows about one message per second to a single chat.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     log,
	}
}

// Send delivers text to destination, which is a numeric chat ID or a
// public channel username such as @channel.
func (b *Bot) Send(ctx context.Context, destination, text string) error {
	msg, err := newMessage(destination, text)
	if err != nil {
		return err
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait rate limit: %w", err)
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	b.log.Debug("message sent", "destination", destination)
	return nil
}

// ValidateDestination reports whether destination is a chat ID or a @channel.
func ValidateDestination(destination string) error {
	_, err := newMessage(destination, "")
	return err
}

func newMessage(destination, text string) (tgbotapi.MessageConfig, error) {
	destination = strings.TrimSpace(destination)
	if strings.HasPrefix(destination, "@") && len(destination) > 1 {
		msg := tgbotapi.NewMessageToChannel(destination, text)
		msg.DisableWebPagePreview = true
		return msg, nil
	}
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("%w %q", ErrInvalidDestination, destination)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	return msg, nil
}
