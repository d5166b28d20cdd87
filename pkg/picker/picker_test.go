package picker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipeed/picotts/pkg/elevenlabs"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		data string
		want Selection
	}{
		{"voice_v1_Bella", Selection{VoiceID: "v1", VoiceName: "Bella"}},
		{"voice_abc_Old_Man_River", Selection{VoiceID: "abc", VoiceName: "Old_Man_River"}},
		{"voice_abc_name with spaces", Selection{VoiceID: "abc", VoiceName: "name with spaces"}},
		{"voice_abc__leading", Selection{VoiceID: "abc", VoiceName: "_leading"}},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := Parse(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, data := range []string{
		"",
		"voice",
		"voice_v1",
		"perm_allow_42",
		"Voice_v1_Bella",
		"voices_v1_Bella",
		"voice__Bella",
	} {
		t.Run(data, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrMalformedSelection)
		})
	}
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	names := []string{"Bella", "Old_Man_River", "_x_", "Ünïcødé voice", "a"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(Encode("21m00Tcm4TlvDq8ikWAM", name))
			require.NoError(t, err)
			assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", got.VoiceID)
			assert.Equal(t, name, got.VoiceName)
		})
	}
}

func TestEncode_FitsTelegramLimit(t *testing.T) {
	long := strings.Repeat("é", 60)

	data := Encode("21m00Tcm4TlvDq8ikWAM", long)

	assert.LessOrEqual(t, len(data), MaxPayloadBytes)
	sel, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(long, sel.VoiceName))
}

func voices(n int) []elevenlabs.Voice {
	out := make([]elevenlabs.Voice, n)
	for i := range out {
		out[i] = elevenlabs.Voice{VoiceID: fmt.Sprintf("id%d", i), Name: fmt.Sprintf("Voice_%d", i)}
	}
	return out
}

func TestLayout_CapsAtTwentyTwoPerRow(t *testing.T) {
	rows := Layout(voices(25), DefaultLimit, DefaultPerRow)

	require.Len(t, rows, 10)
	for _, r := range rows {
		assert.Len(t, r, 2)
	}
	assert.Equal(t, 20, Count(rows))
	assert.Equal(t, "Voice_0", rows[0][0].Text)
	assert.Equal(t, "voice_id0_Voice_0", rows[0][0].Data)
	assert.Equal(t, "Voice_19", rows[9][1].Text)
}

func TestLayout_OddCountLastRowShort(t *testing.T) {
	rows := Layout(voices(3), 0, 0)

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)
}

func TestLayout_Empty(t *testing.T) {
	assert.Empty(t, Layout(nil, DefaultLimit, DefaultPerRow))
}
