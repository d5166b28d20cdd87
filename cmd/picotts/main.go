// picotts - Telegram text-to-speech bot backed by ElevenLabs
// License: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sipeed/picotts/cmd/picotts/internal"
	"github.com/sipeed/picotts/cmd/picotts/internal/run"
	"github.com/sipeed/picotts/cmd/picotts/internal/version"
	"github.com/sipeed/picotts/cmd/picotts/internal/voices"
)

func NewPicoTTSCommand() *cobra.Command {
	short := fmt.Sprintf("%s picotts - Telegram text-to-speech bot v%s", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:           "picotts",
		Short:         short,
		Example:       "picotts run --debug",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&internal.ConfigPath, "config", "c", "", "Path to config.json (default $PICOTTS_CONFIG or ~/.picotts/config.json)")

	cmd.AddCommand(
		run.NewRunCommand(),
		voices.NewVoicesCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewPicoTTSCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
