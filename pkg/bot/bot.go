// Package bot turns chat updates into ElevenLabs requests and replies.
//
// A Bot is transport neutral: it consumes Update values and answers through
// a Messenger. Handle never returns an error; every failure inside a handler
// ends in a log entry and, when a chat is known, a generic apology.
package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/sipeed/picotts/pkg/commands"
	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/metrics"
	"github.com/sipeed/picotts/pkg/picker"
	"github.com/sipeed/picotts/pkg/voicestate"
)

const component = "bot"

// Settings selects the bot variant.
type Settings struct {
	// VoicePicker enables /voices and per-user voice selection. Without it
	// every user speaks with the store's default voice.
	VoicePicker bool

	// PickerLimit caps how many voices the picker offers.
	PickerLimit int

	// CredentialConfigured reports whether an ElevenLabs key is present.
	// Provider-backed handlers reply with an admin notice when it is false.
	CredentialConfigured bool
}

type Bot struct {
	messenger  Messenger
	synth      Synthesizer
	directory  Directory
	store      voicestate.Store
	settings   Settings
	registry   *commands.Registry
	dispatcher *commands.Dispatcher
}

// New wires a bot. directory may be nil when the picker is disabled.
func New(messenger Messenger, synth Synthesizer, directory Directory, store voicestate.Store, settings Settings) *Bot {
	if settings.PickerLimit <= 0 {
		settings.PickerLimit = picker.DefaultLimit
	}
	if directory == nil {
		settings.VoicePicker = false
	}

	b := &Bot{
		messenger: messenger,
		synth:     synth,
		directory: directory,
		store:     store,
		settings:  settings,
	}
	b.registry = commands.NewRegistry(b.definitions())
	b.dispatcher = commands.NewDispatcher(b.registry)
	return b
}

func (b *Bot) definitions() []commands.Definition {
	defs := []commands.Definition{
		{
			Name:        "start",
			Description: "Display the welcome message.",
			Handler:     b.handleStart,
		},
		{
			Name:        "help",
			Description: "Show this help message.",
			Handler:     b.handleHelp,
		},
	}
	if b.settings.VoicePicker {
		defs = append(defs, commands.Definition{
			Name:        "voices",
			Description: "List available voices and select one.",
			Handler:     b.handleVoices,
		})
	}
	return defs
}

// Commands returns the slash commands this bot answers, for menu registration.
func (b *Bot) Commands() []commands.Definition {
	return b.registry.Definitions()
}

// Handle processes one update. It is safe for concurrent use.
func (b *Bot) Handle(ctx context.Context, u Update) {
	traceID := uuid.NewString()
	ctx = withTraceID(ctx, traceID)

	defer func() {
		if r := recover(); r != nil {
			b.fail(ctx, u, fmt.Errorf("panic: %v", r), string(debug.Stack()))
		}
	}()

	if err := b.route(ctx, u); err != nil {
		b.fail(ctx, u, err, "")
	}
}

func (b *Bot) route(ctx context.Context, u Update) error {
	switch u.Kind {
	case KindCallback:
		if !b.settings.VoicePicker {
			metrics.ObserveUpdate("ignored")
			b.answer(ctx, u)
			return nil
		}
		metrics.ObserveUpdate("selection")
		return b.handleSelection(ctx, u)

	case KindMessage:
		if name, isCommand := commands.ParseCommandName(u.Text); isCommand {
			res := b.dispatcher.Dispatch(ctx, commandRequest(u))
			if !res.Matched {
				metrics.ObserveUpdate("ignored")
				logger.DebugCF(component, "Ignoring unknown command", map[string]any{
					"trace_id": traceIDFrom(ctx),
					"command":  name,
					"chat_id":  u.ChatID,
				})
				return nil
			}
			metrics.ObserveUpdate(res.Command)
			return res.Err
		}
		metrics.ObserveUpdate("text")
		return b.handleText(ctx, u)
	}

	metrics.ObserveUpdate("ignored")
	return nil
}

func (b *Bot) fail(ctx context.Context, u Update, err error, stack string) {
	metrics.ObserveHandlerError()

	fields := map[string]any{
		"trace_id":  traceIDFrom(ctx),
		"update_id": u.ID,
		"kind":      u.Kind.String(),
		"chat_id":   u.ChatID,
		"error":     err.Error(),
	}
	if stack != "" {
		fields["stack"] = stack
	}
	logger.ErrorCF(component, "Update handling failed", fields)

	if u.ChatID == 0 {
		return
	}
	// A panicking messenger must not escape the boundary.
	defer func() { _ = recover() }()
	if sendErr := b.messenger.SendText(ctx, Reply{ChatID: u.ChatID, Text: textUnexpectedError}); sendErr != nil {
		logger.WarnCF(component, "Failed to deliver error notice", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"chat_id":  u.ChatID,
			"error":    sendErr.Error(),
		})
	}
}

func commandRequest(u Update) commands.Request {
	return commands.Request{
		ChatID:    u.ChatID,
		SenderID:  u.OwnerID,
		MessageID: u.MessageID,
		FirstName: u.FirstName,
		Text:      u.Text,
	}
}

type traceKey struct{}

func withTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func traceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
