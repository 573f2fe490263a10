package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/cache"
	"github.com/bialog/bialog/internal/config"
	"github.com/bialog/bialog/internal/session"
)

// deps are the collaborators shared by every command.
type deps struct {
	cfg         *config.Config
	credentials session.Provider
	client      *api.Client
}

// newDeps wires the session provider, response cache and API client from
// the loaded configuration. A --token flag or BIALOG_TOKEN replaces the
// credentials file for this invocation.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg := config.GetGlobalConfig()

	credentials, err := credentialsProvider(cmd, cfg)
	if err != nil {
		return nil, err
	}

	store, err := cache.NewStore(
		cfg.Cache.Directory,
		cfg.Cache.Enabled,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)
	if err != nil {
		logger.Warn().Ctx(cmd.Context()).Err(err).Msg("response cache disabled")
		store = nil
	}

	client := api.NewClient(api.Options{
		BaseURL:    cfg.API.Endpoint,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RetryCount: cfg.API.RetryCount,
		BrandCache: store,
	}, credentials)

	return &deps{cfg: cfg, credentials: credentials, client: client}, nil
}

func credentialsProvider(cmd *cobra.Command, cfg *config.Config) (session.Provider, error) {
	token, _ := cmd.Flags().GetString(flagToken)
	if token == "" {
		token = os.Getenv(config.EnvToken)
	}
	if token != "" {
		return session.NewStaticProvider(token), nil
	}
	return fileCredentials(cfg)
}

func fileCredentials(cfg *config.Config) (*session.FileProvider, error) {
	provider, err := session.NewFileProvider(cfg.Session.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("opening credentials: %w", err)
	}
	return provider, nil
}
