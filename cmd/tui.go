package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/app"
	"github.com/nhle/tgift/internal/credential"
	"github.com/nhle/tgift/internal/logging"
	appsync "github.com/nhle/tgift/internal/sync"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(resolveConfigPath(cmd))
	if err != nil {
		return err
	}

	logger, closer := logging.NewFile(cfg.Log.File, resolveLogLevel(cmd, cfg))
	defer closer.Close()

	rt, err := newRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	sched, err := appsync.New(appsync.Config{
		Period:  time.Duration(cfg.Poll.PeriodSec) * time.Second,
		Fetcher: rt.fetcher,
		Prober:  rt.prober,
		Cache:   rt.cache,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	defer sched.Close()

	ctx := context.Background()
	creds := rt.creds
	ui := app.New(app.Deps{
		Scheduler: sched,
		Settings:  rt.settings,
		Registrar: rt.registrar,
		Client:    rt.client,
		Logger:    logger,
		Bell: func() {
			fmt.Fprint(os.Stderr, "\a")
		},
		Forget: func() error {
			err := creds.Delete(credential.KeyPushToken)
			if errors.Is(err, credential.ErrNotFound) {
				return nil
			}
			return err
		},
	}, rt.settings.Load(ctx), rt.uiLanguage(ctx))

	logger.Info().Str("backend", rt.client.BaseURL()).Msg("starting")

	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
