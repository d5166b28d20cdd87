package voices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sipeed/picotts/cmd/picotts/internal"
	"github.com/sipeed/picotts/pkg/config"
	"github.com/sipeed/picotts/pkg/elevenlabs"
)

var errNoVoices = errors.New("no voices available")

type lister interface {
	ListVoices(ctx context.Context) ([]elevenlabs.Voice, error)
}

func NewVoicesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List the ElevenLabs voices available to the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.ElevenLabs.APIKey == "" {
				return config.ErrMissingElevenLabsKey
			}
			client := elevenlabs.NewClient(cfg.ElevenLabs.APIKey, elevenlabs.WithBaseURL(cfg.ElevenLabs.BaseURL))
			return printVoices(cmd.Context(), cmd.OutOrStdout(), client, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most n voices (0 prints all)")

	return cmd
}

func printVoices(ctx context.Context, out io.Writer, l lister, limit int) error {
	voices, err := l.ListVoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}
	if len(voices) == 0 {
		return errNoVoices
	}
	if limit > 0 && len(voices) > limit {
		voices = voices[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVOICE ID")
	for _, v := range voices {
		fmt.Fprintf(w, "%s\t%s\n", v.Name, v.VoiceID)
	}
	return w.Flush()
}
