package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Sender delivers a text message to the default destination.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	limiter    *rate.Limiter
	maxRetries uint64
	logger     zerolog.Logger
}

// TelegramOptions holds the connection settings for a bot.
type TelegramOptions struct {
	Token    string
	ChatID   int64
	Proxy    string
	Endpoint string // defaults to tgbotapi.APIEndpoint
}

// NewTelegramNotifier authorizes the bot and returns a notifier.
func NewTelegramNotifier(opts TelegramOptions, logger zerolog.Logger) (*TelegramNotifier, error) {
	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: 45 * time.Second, Transport: transport}

	bot, err := tgbotapi.NewBotAPIWithClient(opts.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	logger = logger.With().Str("component", "telegram").Logger()
	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")

	return &TelegramNotifier{
		bot:        bot,
		chatID:     opts.ChatID,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		maxRetries: 3,
		logger:     logger,
	}, nil
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("telegram chat id not configured")
	}
	return t.SendTo(ctx, t.chatID, text)
}

// SendTo sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendTo(ctx context.Context, chatID int64, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	attempt := 0
	operation := func() error {
		attempt++
		if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			t.logger.Warn().Err(err).Int("attempt", attempt).Msg("telegram send failed")
			return err
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), t.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("send telegram message after %d attempts: %w", attempt, err)
	}
	return nil
}

// LogSender writes messages to the log. It is used when no chat is configured.
type LogSender struct {
	Logger zerolog.Logger
}

func (l LogSender) Send(_ context.Context, text string) error {
	l.Logger.Info().Str("text", text).Msg("notification")
	return nil
}
