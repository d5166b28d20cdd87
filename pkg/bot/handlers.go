package bot

import (
	"context"
	"strings"

	"github.com/sipeed/picotts/pkg/commands"
	"github.com/sipeed/picotts/pkg/elevenlabs"
	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/metrics"
	"github.com/sipeed/picotts/pkg/picker"
	"github.com/sipeed/picotts/pkg/utils"
)

const previewLen = 50

func (b *Bot) handleStart(ctx context.Context, req commands.Request) error {
	logger.InfoCF(component, "Start command", map[string]any{
		"trace_id":  traceIDFrom(ctx),
		"sender_id": req.SenderID,
	})
	return b.messenger.SendText(ctx, Reply{
		ChatID:  req.ChatID,
		ReplyTo: req.MessageID,
		Text:    welcomeText(req.FirstName, b.settings.VoicePicker),
		HTML:    true,
	})
}

func (b *Bot) handleHelp(ctx context.Context, req commands.Request) error {
	pref := b.store.Get(req.SenderID)
	return b.messenger.SendText(ctx, Reply{
		ChatID:  req.ChatID,
		ReplyTo: req.MessageID,
		Text:    helpText(b.registry.Definitions(), pref),
		HTML:    true,
	})
}

func (b *Bot) handleVoices(ctx context.Context, req commands.Request) error {
	reply := Reply{ChatID: req.ChatID, ReplyTo: req.MessageID}

	if !b.settings.CredentialConfigured {
		reply.Text = textVoicesNotConfigured
		return b.messenger.SendText(ctx, reply)
	}

	b.chatAction(ctx, req.ChatID, ActionTyping)

	voices, err := b.directory.ListVoices(ctx)
	if err != nil || len(voices) == 0 {
		fields := map[string]any{
			"trace_id":  traceIDFrom(ctx),
			"sender_id": req.SenderID,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.WarnCF(component, "Voice directory unavailable", fields)
		reply.Text = textVoicesUnavailable
		return b.messenger.SendText(ctx, reply)
	}

	reply.Text = textChooseVoice
	reply.Keyboard = picker.Layout(voices, b.settings.PickerLimit, picker.DefaultPerRow)
	logger.DebugCF(component, "Offering voice picker", map[string]any{
		"trace_id": traceIDFrom(ctx),
		"offered":  picker.Count(reply.Keyboard),
		"total":    len(voices),
	})
	return b.messenger.SendText(ctx, reply)
}

func (b *Bot) handleSelection(ctx context.Context, u Update) error {
	b.answer(ctx, u)

	sel, err := picker.Parse(u.CallbackData)
	if err != nil {
		metrics.ObserveVoiceSelection(false)
		logger.WarnCF(component, "Rejected voice selection", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"owner_id": u.OwnerID,
			"data":     u.CallbackData,
			"error":    err.Error(),
		})
		return b.editOrSend(ctx, u, textInvalidSelection, false)
	}

	b.store.Set(u.OwnerID, sel.VoiceID, sel.VoiceName)
	metrics.ObserveVoiceSelection(true)
	logger.InfoCF(component, "Voice selected", map[string]any{
		"trace_id":   traceIDFrom(ctx),
		"owner_id":   u.OwnerID,
		"voice_id":   sel.VoiceID,
		"voice_name": sel.VoiceName,
	})
	return b.editOrSend(ctx, u, voiceSetText(sel.VoiceName), true)
}

func (b *Bot) handleText(ctx context.Context, u Update) error {
	if strings.TrimSpace(u.Text) == "" {
		return nil
	}

	pref := b.store.Get(u.OwnerID)
	logger.InfoCF(component, "Synthesis requested", map[string]any{
		"trace_id": traceIDFrom(ctx),
		"owner_id": u.OwnerID,
		"voice_id": pref.VoiceID,
		"preview":  utils.Truncate(u.Text, previewLen),
	})

	b.chatAction(ctx, u.ChatID, ActionRecordVoice)

	reply := Reply{ChatID: u.ChatID, ReplyTo: u.MessageID}
	if !b.settings.CredentialConfigured {
		reply.Text = textTTSNotConfigured
		return b.messenger.SendText(ctx, reply)
	}

	audio, err := b.synth.Synthesize(ctx, elevenlabs.SynthesisRequest{Text: u.Text, VoiceID: pref.VoiceID})
	if err != nil {
		logger.WarnCF(component, "Synthesis failed", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"owner_id": u.OwnerID,
			"voice_id": pref.VoiceID,
			"kind":     elevenlabs.KindOf(err).String(),
			"error":    err.Error(),
		})
		reply.Text = ttsFailedText(b.settings.VoicePicker)
		return b.messenger.SendText(ctx, reply)
	}

	caption := ""
	if b.settings.VoicePicker {
		caption = voiceCaption(pref.VoiceName)
	}
	if err := b.messenger.SendVoice(ctx, u.ChatID, u.MessageID, audio, caption); err != nil {
		logger.ErrorCF(component, "Failed to send voice reply", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"chat_id":  u.ChatID,
			"bytes":    len(audio),
			"error":    err.Error(),
		})
		reply.Text = textSendAudioFailed
		return b.messenger.SendText(ctx, reply)
	}
	return nil
}

// answer acknowledges a callback so the client stops its spinner.
func (b *Bot) answer(ctx context.Context, u Update) {
	if u.CallbackID == "" {
		return
	}
	if err := b.messenger.AnswerCallback(ctx, u.CallbackID); err != nil {
		logger.DebugCF(component, "Callback acknowledgement failed", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"error":    err.Error(),
		})
	}
}

func (b *Bot) chatAction(ctx context.Context, chatID int64, action ChatAction) {
	if err := b.messenger.SendChatAction(ctx, chatID, action); err != nil {
		logger.DebugCF(component, "Chat action failed", map[string]any{
			"trace_id": traceIDFrom(ctx),
			"action":   string(action),
			"error":    err.Error(),
		})
	}
}

// editOrSend rewrites the picker message in place, or posts a new message
// when that message is no longer addressable.
func (b *Bot) editOrSend(ctx context.Context, u Update, text string, html bool) error {
	if u.ChatID == 0 {
		return nil
	}
	if u.MessageID == 0 {
		return b.messenger.SendText(ctx, Reply{ChatID: u.ChatID, Text: text, HTML: html})
	}
	return b.messenger.EditText(ctx, u.ChatID, u.MessageID, text, html)
}
