package bot

import (
	"context"

	"github.com/sipeed/picotts/pkg/elevenlabs"
	"github.com/sipeed/picotts/pkg/picker"
)

// Kind tells message updates from inline keyboard callbacks.
type Kind int

const (
	KindMessage Kind = iota
	KindCallback
)

func (k Kind) String() string {
	if k == KindCallback {
		return "callback"
	}
	return "message"
}

// Update is the transport-neutral form of an inbound chat event.
//
// For callbacks ChatID and MessageID point at the message carrying the
// keyboard; MessageID is zero when the platform no longer exposes it.
type Update struct {
	ID           int
	Kind         Kind
	ChatID       int64
	OwnerID      int64
	MessageID    int
	FirstName    string
	Username     string
	Text         string
	CallbackID   string
	CallbackData string
}

// ChatAction is an advisory activity indicator shown to the chat.
type ChatAction string

const (
	ActionTyping      ChatAction = "typing"
	ActionRecordVoice ChatAction = "record_voice"
)

// Reply is an outbound text message, optionally HTML formatted and
// optionally carrying an inline keyboard.
type Reply struct {
	ChatID   int64
	ReplyTo  int
	Text     string
	HTML     bool
	Keyboard [][]picker.Button
}

// Messenger is the outbound side of the chat platform.
type Messenger interface {
	SendText(ctx context.Context, reply Reply) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, html bool) error
	SendVoice(ctx context.Context, chatID int64, replyTo int, audio []byte, caption string) error
	SendChatAction(ctx context.Context, chatID int64, action ChatAction) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, req elevenlabs.SynthesisRequest) ([]byte, error)
}

// Directory lists the voices the picker may offer.
type Directory interface {
	ListVoices(ctx context.Context) ([]elevenlabs.Voice, error)
}
