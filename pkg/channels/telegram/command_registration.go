package telegram

import (
	"context"
	"time"

	"github.com/mymmrac/telego"

	"github.com/sipeed/picotts/pkg/commands"
	"github.com/sipeed/picotts/pkg/logger"
)

var commandRegistrationBackoff = []time.Duration{
	5 * time.Second,
	15 * time.Second,
	60 * time.Second,
	5 * time.Minute,
	10 * time.Minute,
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (c *Channel) RegisterCommands(ctx context.Context, defs []commands.Definition) error {
	return c.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: botCommands(defs),
	})
}

func botCommands(defs []commands.Definition) []telego.BotCommand {
	out := make([]telego.BotCommand, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" || def.Description == "" {
			continue
		}
		out = append(out, telego.BotCommand{
			Command:     def.Name,
			Description: def.Description,
		})
	}
	return out
}

// startCommandRegistration retries registration in the background until it
// succeeds or ctx ends. Startup never waits on it.
func (c *Channel) startCommandRegistration(ctx context.Context, defs []commands.Definition) {
	if len(defs) == 0 {
		return
	}

	register := c.registerFunc
	if register == nil {
		register = c.RegisterCommands
	}

	regCtx, cancel := context.WithCancel(ctx)
	c.commandRegCancel = cancel

	go func() {
		attempt := 0
		for {
			err := register(regCtx, defs)
			if err == nil {
				logger.InfoCF(component, "Telegram commands registered", map[string]any{
					"count": len(defs),
				})
				return
			}

			delay := commandRegistrationBackoff[min(attempt, len(commandRegistrationBackoff)-1)]
			logger.WarnCF(component, "Telegram command registration failed; will retry", map[string]any{
				"error":       err.Error(),
				"attempt":     attempt + 1,
				"retry_after": delay.String(),
			})
			attempt++

			select {
			case <-regCtx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
}
