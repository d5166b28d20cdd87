// Package voicestate remembers which voice each Telegram user picked.
package voicestate

import "sync"

// DefaultVoiceName is reported for owners who never picked a voice.
const DefaultVoiceName = "Default"

// Preference is the voice an owner speaks with.
type Preference struct {
	OwnerID   int64
	VoiceID   string
	VoiceName string
}

// Store maps owners to their preference. Get never fails: owners without a
// stored preference get the store's default.
type Store interface {
	Get(ownerID int64) Preference
	Set(ownerID int64, voiceID, voiceName string)
}

// MemoryStore keeps preferences for the process lifetime. Writes are
// last-write-wins.
type MemoryStore struct {
	defaultVoiceID string
	prefs          sync.Map // int64 -> Preference
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store falling back to defaultVoiceID.
func NewMemoryStore(defaultVoiceID string) *MemoryStore {
	return &MemoryStore{defaultVoiceID: defaultVoiceID}
}

func (s *MemoryStore) Get(ownerID int64) Preference {
	if v, ok := s.prefs.Load(ownerID); ok {
		return v.(Preference)
	}
	return Preference{
		OwnerID:   ownerID,
		VoiceID:   s.defaultVoiceID,
		VoiceName: DefaultVoiceName,
	}
}

func (s *MemoryStore) Set(ownerID int64, voiceID, voiceName string) {
	s.prefs.Store(ownerID, Preference{
		OwnerID:   ownerID,
		VoiceID:   voiceID,
		VoiceName: voiceName,
	})
}

// Len returns the number of owners with a stored preference.
func (s *MemoryStore) Len() int {
	n := 0
	s.prefs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
