package app

import (
	"context"
	"fmt"

	"github.com/antoniostano/knowbot/internal/bot"
	"github.com/antoniostano/knowbot/internal/config"
	"github.com/antoniostano/knowbot/internal/httpapi"
	"github.com/antoniostano/knowbot/internal/memory"
	"github.com/antoniostano/knowbot/internal/observability"
	"github.com/antoniostano/knowbot/internal/resolve"
	"github.com/antoniostano/knowbot/internal/session"
	"github.com/antoniostano/knowbot/internal/wiki"
)

// BuildResult bundles the wired service components.
type BuildResult struct {
	Config      config.Config
	API         *httpapi.Server
	Sessions    *session.Manager
	Metrics     *observability.Metrics
	ArchiveMode string

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

// Build assembles the full service from configuration: transcript
// archive, encyclopedia client, resolver, session manager and HTTP API.
func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	archive, err := memory.NewArchive(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("archive init failed: %w", err)
	}
	archiveMode := "in-memory"
	if cfg.DatabaseURL != "" {
		archiveMode = "postgres"
	}

	provider := wiki.NewClient(wiki.ClientConfig{
		APIURL:    cfg.WikiAPIURL,
		UserAgent: cfg.WikiUserAgent,
		Timeout:   cfg.WikiTimeout,
	})
	resolver := resolve.New(provider, resolve.Options{
		SearchLimit:      cfg.SearchLimit,
		SummarySentences: cfg.SummarySentences,
		SeedNames:        cfg.SeedNames(resolve.DefaultSeedNames),
	})

	sessions := session.NewManager(cfg.SessionInactivityTimeout, func(sessionID string) *bot.Session {
		return bot.NewSession(bot.Config{
			SessionID:     sessionID,
			HistoryWindow: cfg.HistoryWindow,
			Resolver:      resolver,
			Provider:      provider,
			Archive:       archive,
			Metrics:       metrics,
		})
	})
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	api := httpapi.New(cfg, sessions, metrics)

	return &BuildResult{
		Config:      cfg,
		API:         api,
		Sessions:    sessions,
		Metrics:     metrics,
		ArchiveMode: archiveMode,
		Cleanup:     archive.Close,
	}, nil
}
