// Package picker builds the inline voice picker and parses what comes back
// from it.
//
// A button carries its selection as callback data of the form
//
//	voice_<voice id>_<voice name>
//
// split at most twice on "_", so the name may itself contain underscores.
// Voice ids must not contain "_"; ElevenLabs ids are alphanumeric.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sipeed/picotts/pkg/utils"
)

const (
	// Marker is the first segment of every selection payload.
	Marker = "voice"

	// Prefix is what the dispatcher matches callback data against.
	Prefix = Marker + delimiter

	delimiter = "_"

	// MaxPayloadBytes is Telegram's limit for inline button callback data.
	MaxPayloadBytes = 64
)

// ErrMalformedSelection is returned by Parse for payloads that do not follow
// the voice_<id>_<name> grammar.
var ErrMalformedSelection = errors.New("malformed voice selection")

// Selection is a parsed payload.
type Selection struct {
	VoiceID   string
	VoiceName string
}

// Encode builds the callback payload for a voice. The name is cut on a rune
// boundary when the payload would exceed MaxPayloadBytes.
func Encode(voiceID, voiceName string) string {
	head := Prefix + voiceID + delimiter
	room := MaxPayloadBytes - len(head)
	if room < 0 {
		room = 0
	}
	return head + utils.TruncateBytes(voiceName, room)
}

// Parse decodes a callback payload.
func Parse(data string) (Selection, error) {
	parts := strings.SplitN(data, delimiter, 3)
	if len(parts) < 3 {
		return Selection{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedSelection, len(parts))
	}
	if parts[0] != Marker {
		return Selection{}, fmt.Errorf("%w: unexpected marker %q", ErrMalformedSelection, parts[0])
	}
	if parts[1] == "" {
		return Selection{}, fmt.Errorf("%w: empty voice id", ErrMalformedSelection)
	}
	return Selection{VoiceID: parts[1], VoiceName: parts[2]}, nil
}
