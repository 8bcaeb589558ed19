package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const welcomeMessage = "Halo! Selamat datang di toko fashion kami. Tanyakan status pesanan, info produk, atau kebijakan garansi."

// Replier produces the reply for one customer message.
type Replier interface {
	Reply(ctx context.Context, sessionID, message string) string
}

type Bot struct {
	bot     *tele.Bot
	replier Replier
	sender  *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	replier Replier,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler error")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		replier: replier,
		sender:  newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(welcomeMessage)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := SessionID(c.Chat().ID)
	ctx = log.WithFields(ctx, "chat", sessionID)

	_ = c.Notify(tele.Typing)

	reply := b.replier.Reply(ctx, sessionID, c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), reply)
}

// SessionID maps a Telegram chat to its conversation session.
func SessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}
