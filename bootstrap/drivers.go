package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"search-service/config"
	"search-service/driver"
	"search-service/logger"
	"search-service/retry"

	"github.com/meilisearch/meilisearch-go"
)

// initDatabaseDriver creates the database driver from loaded config.
func initDatabaseDriver(ctx context.Context, cfg *config.Config) (*driver.DatabaseDriver, error) {
	dbDriver, err := driver.NewDatabaseDriverFromURL(ctx, cfg.Database.GetDatabaseURL(), cfg.Database.Timeout)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	return dbDriver, nil
}

// initMeilisearchClient connects to Meilisearch, retrying while the engine
// container is still coming up.
func initMeilisearchClient(ctx context.Context, cfg *config.Config) (meilisearch.ServiceManager, error) {
	logger.Logger.Info("Connecting to Meilisearch", "host", cfg.Meilisearch.Host)

	// The default engine client has no HTTP timeout; a stuck engine would
	// otherwise pin request goroutines forever.
	msClient := meilisearch.New(cfg.Meilisearch.Host,
		meilisearch.WithAPIKey(cfg.Meilisearch.APIKey),
		meilisearch.WithCustomClient(&http.Client{Timeout: cfg.Meilisearch.Timeout}),
	)

	err := retry.Do(ctx, config.BootstrapAttempts, retry.Constant(config.BootstrapDelay), func(ctx context.Context) error {
		if _, healthErr := msClient.Health(); healthErr != nil {
			logger.Logger.Warn("Meilisearch not ready, retrying", "err", healthErr)
			return healthErr
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Meilisearch: %w", err)
	}

	logger.Logger.Info("Connected to Meilisearch successfully")
	return msClient, nil
}
