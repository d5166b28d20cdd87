package main

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipeed/picotts/cmd/picotts/internal"
)

func TestNewPicoTTSCommand(t *testing.T) {
	cmd := NewPicoTTSCommand()

	require.NotNil(t, cmd)

	short := fmt.Sprintf("%s picotts - Telegram text-to-speech bot v%s", internal.Logo, internal.GetVersion())

	assert.Equal(t, "picotts", cmd.Use)
	assert.Equal(t, short, cmd.Short)
	assert.True(t, cmd.HasSubCommands())
	assert.True(t, cmd.HasAvailablePersistentFlags())
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	allowed := []string{"run", "voices", "version"}
	for _, subcmd := range cmd.Commands() {
		found := slices.Contains(allowed, subcmd.Name())
		assert.True(t, found, "unexpected subcommand %q", subcmd.Name())
		assert.False(t, subcmd.Hidden)
	}
	assert.Len(t, cmd.Commands(), len(allowed))
}
