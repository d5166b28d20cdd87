// Package telegram connects a bot.Bot to the Telegram Bot API using long
// polling.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/mymmrac/telego"
	"golang.org/x/sync/semaphore"

	"github.com/sipeed/picotts/pkg/bot"
	"github.com/sipeed/picotts/pkg/commands"
	"github.com/sipeed/picotts/pkg/config"
	"github.com/sipeed/picotts/pkg/logger"
)

const (
	component      = "telegram"
	pollingTimeout = 30
)

// Handler consumes converted updates. It runs on its own goroutine.
type Handler func(ctx context.Context, u bot.Update)

type Channel struct {
	bot       *telego.Bot
	allowFrom []string
	sem       *semaphore.Weighted
	handler   Handler
	commands  []commands.Definition

	registerFunc     func(context.Context, []commands.Definition) error
	commandRegCancel context.CancelFunc

	inflight sync.WaitGroup
	running  atomic.Bool
}

var _ bot.Messenger = (*Channel)(nil)

// NewChannel creates a channel for cfg. Extra telego options are applied
// after the proxy client.
func NewChannel(cfg config.TelegramConfig, opts ...telego.BotOption) (*Channel, error) {
	var botOpts []telego.BotOption

	if cfg.Proxy != "" {
		proxyURL, parseErr := url.Parse(cfg.Proxy)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.Proxy, parseErr)
		}
		botOpts = append(botOpts, telego.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			},
		}))
	}
	botOpts = append(botOpts, opts...)

	tg, err := telego.NewBot(cfg.Token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	limit := cfg.MaxConcurrentUpdates
	if limit <= 0 {
		limit = 1
	}

	return &Channel{
		bot:       tg,
		allowFrom: cfg.AllowFrom,
		sem:       semaphore.NewWeighted(int64(limit)),
	}, nil
}

// SetHandler installs the update consumer. Call before Start.
func (c *Channel) SetHandler(h Handler) {
	c.handler = h
}

// SetCommands sets the command menu registered on Start.
func (c *Channel) SetCommands(defs []commands.Definition) {
	c.commands = defs
}

func (c *Channel) IsRunning() bool {
	return c.running.Load()
}

// Start verifies the token, begins long polling and returns. Polling stops
// when ctx is cancelled.
func (c *Channel) Start(ctx context.Context) error {
	if c.handler == nil {
		return fmt.Errorf("telegram channel has no handler")
	}

	logger.InfoC(component, "Starting Telegram bot (polling mode)...")

	me, err := c.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach telegram: %w", err)
	}

	updates, err := c.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        pollingTimeout,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return fmt.Errorf("failed to start long polling: %w", err)
	}

	c.running.Store(true)
	logger.InfoCF(component, "Telegram bot connected", map[string]any{
		"username": me.Username,
	})

	c.startCommandRegistration(ctx, c.commands)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		for update := range updates {
			c.dispatch(ctx, update)
		}
		logger.InfoC(component, "Updates channel closed")
	}()

	return nil
}

// Stop waits for the polling loop and in-flight handlers to finish, or for
// ctx to expire. Cancel the context passed to Start first.
func (c *Channel) Stop(ctx context.Context) error {
	logger.InfoC(component, "Stopping Telegram bot...")
	c.running.Store(false)
	if c.commandRegCancel != nil {
		c.commandRegCancel()
	}

	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch hands one update to the handler on its own goroutine. It blocks
// while the concurrency limit is reached.
func (c *Channel) dispatch(ctx context.Context, update telego.Update) {
	u, sender, ok := toUpdate(update)
	if !ok {
		return
	}

	if !isAllowed(c.allowFrom, sender.ID, sender.Username) {
		logger.DebugCF(component, "Update rejected by allowlist", map[string]any{
			"user_id":  sender.ID,
			"username": sender.Username,
		})
		return
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer c.sem.Release(1)
		c.handler(ctx, u)
	}()
}
