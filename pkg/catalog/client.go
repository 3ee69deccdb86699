package catalog

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Required: OAuth client ID
	ClientSecret string       // Required: OAuth client secret
	RedirectURI  string       // Optional: redirect URI for the authorization-code flow
	AccessToken  string       // Optional: access token for authenticated requests
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string       // Optional: Web API base URL (defaults to the public API, used for testing)
	AccountsURL  string       // Optional: accounts base URL for token exchange (used for testing)
	Logger       Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for catalog API operations.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	accessToken  string
	httpClient   *http.Client
	baseURL      string
	accountsURL  string
	logger       Logger

	auth      *AuthService
	search    *SearchService
	artists   *ArtistsService
	playlists *PlaylistsService
	player    *PlayerService
}

const (
	// DefaultBaseURL is the default Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultAccountsURL is the default accounts endpoint for token exchange.
	DefaultAccountsURL = "https://accounts.spotify.com"
)

// NewClient creates a new catalog API client.
//
// Returns an error if required configuration (ClientID, ClientSecret)
// is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("catalog: ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("catalog: ClientSecret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		accessToken:  cfg.AccessToken,
		httpClient:   httpClient,
		baseURL:      baseURL,
		accountsURL:  accountsURL,
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.search = &SearchService{client: c}
	c.artists = &ArtistsService{client: c}
	c.playlists = &PlaylistsService{client: c}
	c.player = &PlayerService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// Artists returns the artists service.
func (c *Client) Artists() *ArtistsService {
	return c.artists
}

// Playlists returns the playlists service.
func (c *Client) Playlists() *PlaylistsService {
	return c.playlists
}

// Player returns the playback service.
func (c *Client) Player() *PlayerService {
	return c.player
}

// SetAccessToken sets the access token for authenticated requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// GetAccessToken returns the current access token.
func (c *Client) GetAccessToken() string {
	return c.accessToken
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
