package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/credential"
	"github.com/nhle/tgift/internal/device"
	"github.com/nhle/tgift/internal/feed"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/probe"
	"github.com/nhle/tgift/internal/settings"
	"github.com/nhle/tgift/internal/store"
)

// services holds the collaborators shared by every command.
type services struct {
	cfg       *model.AppConfig
	logger    zerolog.Logger
	db        *store.SQLiteStore
	client    *backend.Client
	cache     *cache.Cache
	fetcher   *feed.Fetcher
	prober    *probe.Prober
	settings  *settings.Manager
	creds     credential.Store
	registrar *device.Registrar
}

// loadConfig reads the config file selected by the --config flag.
func loadConfig(path string) (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveBackendURL picks the backend base URL once per process. An
// explicit backend.url wins over the URL file when it is valid.
func resolveBackendURL(cfg *model.AppConfig, logger zerolog.Logger) string {
	if cfg.Backend.URL != "" {
		if u, ok := backend.NormalizeBaseURL(cfg.Backend.URL); ok {
			return u
		}
		logger.Warn().Str("url", cfg.Backend.URL).Msg("ignoring invalid backend.url")
	}
	return backend.ResolveBaseURL(cfg.Backend.URLFile)
}

// newRuntime opens the local store and wires the domain services.
func newRuntime(cfg *model.AppConfig, logger zerolog.Logger) (*services, error) {
	db, err := store.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	baseURL := resolveBackendURL(cfg, logger)
	logger.Debug().Str("backend", baseURL).Msg("resolved backend")

	client := backend.NewClient(baseURL, time.Duration(cfg.Backend.TimeoutSec)*time.Second)
	c := cache.New(db, logger)
	creds := credential.NewKeyring(cfg.Data.Dir)

	return &services{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		client:    client,
		cache:     c,
		fetcher:   feed.New(client, c, logger),
		prober:    probe.New(client, logger),
		settings:  settings.New(db, logger),
		creds:     creds,
		registrar: device.NewRegistrar(client, db, device.DefaultToken(cfg.Push.Token, creds, logger), logger),
	}, nil
}

func (r *services) Close() error {
	return r.db.Close()
}

// consoleRuntime is the bootstrap for one-shot subcommands, which log
// to stderr and print results to stdout.
func consoleRuntime(cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(resolveConfigPath(cmd))
	if err != nil {
		return nil, err
	}
	logger := logging.NewConsole(os.Stderr, resolveLogLevel(cmd, cfg))
	return newRuntime(cfg, logger)
}

// uiLanguage returns the stored language, or the one matching the
// process locale when the user never picked one.
func (r *services) uiLanguage(ctx context.Context) string {
	if r.settings.LanguageSet(ctx) {
		return r.settings.Language(ctx)
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return i18n.Match(v)
		}
	}
	return i18n.DefaultLanguage
}
