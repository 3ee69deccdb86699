package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Directory holding the dated stage artifacts
	DataDir string

	// Target playlist name for the sync stage
	PlaylistName string

	// Advisory delay between catalog API calls
	RequestDelay time.Duration

	// Venue events API credentials
	Venue VenueConfig

	// Music catalog API credentials
	Catalog CatalogConfig
}

// VenueConfig holds venue events API specific configuration
type VenueConfig struct {
	APIKey  string
	VenueID string
}

// CatalogConfig holds music catalog API specific configuration
type CatalogConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("playlist_name", "Brooklyn Paramount")
	v.SetDefault("request_delay_ms", 500)
	v.SetDefault("catalog.redirect_uri", "http://localhost:3000/callback")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("VENUESYNC")
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		DataDir:      v.GetString("data_dir"),
		PlaylistName: v.GetString("playlist_name"),
		RequestDelay: time.Duration(v.GetInt("request_delay_ms")) * time.Millisecond,
		Venue: VenueConfig{
			APIKey:  v.GetString("venue.api_key"),
			VenueID: v.GetString("venue.venue_id"),
		},
		Catalog: CatalogConfig{
			ClientID:     v.GetString("catalog.client_id"),
			ClientSecret: v.GetString("catalog.client_secret"),
			RedirectURI:  v.GetString("catalog.redirect_uri"),
			RefreshToken: v.GetString("catalog.refresh_token"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "venuesync")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// defaultDataDir returns the default artifact directory
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(homeDir, ".local", "share", "venuesync")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("data_dir", c.DataDir)
	v.Set("playlist_name", c.PlaylistName)
	v.Set("request_delay_ms", int(c.RequestDelay/time.Millisecond))
	v.Set("venue.api_key", c.Venue.APIKey)
	v.Set("venue.venue_id", c.Venue.VenueID)
	v.Set("catalog.client_id", c.Catalog.ClientID)
	v.Set("catalog.client_secret", c.Catalog.ClientSecret)
	v.Set("catalog.redirect_uri", c.Catalog.RedirectURI)
	v.Set("catalog.refresh_token", c.Catalog.RefreshToken)

	// Write to file
	return v.WriteConfigAs(configFile)
}
