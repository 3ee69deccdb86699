package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/internal/pipeline"
	"github.com/venuesync/venuesync/pkg/catalog"
	"github.com/venuesync/venuesync/pkg/venue"
)

// newVenueClient builds the venue events client from config.
func newVenueClient(cfg *config.Config, logger zerolog.Logger) (*venue.Client, error) {
	if cfg.Venue.APIKey == "" || cfg.Venue.VenueID == "" {
		return nil, fmt.Errorf("venue API not configured: set venue.api_key and venue.venue_id in %s", filepath.Join(config.GetConfigDir(), "config.yaml"))
	}

	return venue.NewClient(venue.Config{
		APIKey:  cfg.Venue.APIKey,
		VenueID: cfg.Venue.VenueID,
		Logger:  sdkLogger{logger},
	})
}

// newCatalogClient builds an authenticated catalog client, refreshing
// the access token from the stored refresh token. The refresh token
// rotates when the catalog issues a new one.
func newCatalogClient(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Client, error) {
	if cfg.Catalog.ClientID == "" || cfg.Catalog.ClientSecret == "" {
		return nil, fmt.Errorf("catalog credentials not configured. Run 'venuesync auth' first")
	}
	if cfg.Catalog.RefreshToken == "" {
		return nil, fmt.Errorf("not authenticated. Run 'venuesync auth' first")
	}

	client, err := catalog.NewClient(catalog.Config{
		ClientID:     cfg.Catalog.ClientID,
		ClientSecret: cfg.Catalog.ClientSecret,
		RedirectURI:  cfg.Catalog.RedirectURI,
		Logger:       sdkLogger{logger},
	})
	if err != nil {
		return nil, err
	}

	token, err := client.Auth().Refresh(ctx, cfg.Catalog.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed (re-run 'venuesync auth'): %w", err)
	}

	if token.RefreshToken != "" && token.RefreshToken != cfg.Catalog.RefreshToken {
		cfg.Catalog.RefreshToken = token.RefreshToken
		if err := cfg.Save(); err != nil {
			logger.Warn().Err(err).Msg("Failed to persist rotated refresh token")
		}
	}

	return client, nil
}

// newStore opens the artifact store at the configured data directory.
func newStore(cfg *config.Config) (*pipeline.Store, error) {
	return pipeline.NewStore(cfg.DataDir)
}

// journalPath returns the sqlite run journal path inside the data dir.
func journalPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "journal.db")
}
