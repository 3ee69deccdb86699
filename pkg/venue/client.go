package venue

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	APIKey     string       // Required: API key sent as the x-api-key header
	VenueID    string       // Required: venue discovery ID to list events for
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: GraphQL endpoint (defaults to the Live Nation API, used for testing)
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client fetches event listings for a single venue.
type Client struct {
	apiKey     string
	venueID    string
	httpClient *http.Client
	baseURL    string
	logger     Logger
}

const (
	// DefaultBaseURL is the default events GraphQL endpoint.
	DefaultBaseURL = "https://api.livenation.com/graphql"

	// pageSize is the fixed page size the endpoint serves.
	pageSize = 36
)

// NewClient creates a new venue events client.
//
// Returns an error if required configuration (APIKey, VenueID) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("venue: APIKey is required")
	}
	if cfg.VenueID == "" {
		return nil, fmt.Errorf("venue: VenueID is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:     cfg.APIKey,
		venueID:    cfg.VenueID,
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger,
	}, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
