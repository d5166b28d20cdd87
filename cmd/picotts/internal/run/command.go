package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sipeed/picotts/cmd/picotts/internal"
	"github.com/sipeed/picotts/pkg/bot"
	"github.com/sipeed/picotts/pkg/channels/telegram"
	"github.com/sipeed/picotts/pkg/config"
	"github.com/sipeed/picotts/pkg/elevenlabs"
	"github.com/sipeed/picotts/pkg/logger"
	"github.com/sipeed/picotts/pkg/metrics"
	"github.com/sipeed/picotts/pkg/voicestate"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Run the Telegram bot until interrupted",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBot(ctx, debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}

func runBot(ctx context.Context, debug bool) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := internal.SetupLogging(cfg, debug); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ch, b, err := build(cfg)
	if err != nil {
		return err
	}

	logger.InfoCF("cli", "Starting picotts", map[string]any{
		"version":      internal.FormatVersion(),
		"voice_picker": cfg.Bot.VoicePicker,
		"metrics":      cfg.Metrics.Enabled,
		"commands":     len(b.Commands()),
	})
	if cfg.Degraded() {
		logger.WarnC("cli", "ELEVENLABS_API_KEY is not set; voice features will answer with an admin notice")
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		exporter := metrics.NewExporter(cfg.Metrics.Addr)
		g.Go(exporter.Start)
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return exporter.Shutdown(sctx)
		})
	}

	g.Go(func() error {
		if err := ch.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return ch.Stop(sctx)
	})

	err = g.Wait()
	logger.InfoC("cli", "picotts stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// build wires the bot graph for cfg without touching the network.
func build(cfg *config.Config) (*telegram.Channel, *bot.Bot, error) {
	client := elevenlabs.NewClient(cfg.ElevenLabs.APIKey, elevenlabs.WithBaseURL(cfg.ElevenLabs.BaseURL))
	store := voicestate.NewMemoryStore(cfg.ElevenLabs.DefaultVoiceID)

	ch, err := telegram.NewChannel(cfg.Telegram)
	if err != nil {
		return nil, nil, err
	}

	var directory bot.Directory
	if cfg.Bot.VoicePicker {
		directory = client
	}

	b := bot.New(ch, client, directory, store, bot.Settings{
		VoicePicker:          cfg.Bot.VoicePicker,
		PickerLimit:          cfg.Bot.PickerLimit,
		CredentialConfigured: client.HasCredential(),
	})
	ch.SetHandler(b.Handle)
	ch.SetCommands(b.Commands())

	return ch, b, nil
}
