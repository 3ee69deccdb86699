package catalog

// Artist represents a catalog artist.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	Genres     []string `json:"genres"`
}

// Track represents a catalog track.
type Track struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	DurationMS int    `json:"duration_ms"`
}

// Playlist represents a user playlist.
type Playlist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User represents the authenticated catalog user.
type User struct {
	ID string `json:"id"`
}

// Device represents a playback device.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"is_active"`
}

// Token represents an OAuth token response from the accounts endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}
