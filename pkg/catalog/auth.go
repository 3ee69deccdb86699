package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AuthService provides OAuth authorization-code operations.
type AuthService struct {
	client *Client
}

// AuthURL returns the URL where the user authorizes the application.
//
// After the user approves, the catalog redirects to the configured
// RedirectURI with a `code` query parameter. Exchange that code for
// tokens with Exchange.
//
// Example:
//
//	url := client.Auth().AuthURL([]string{
//	    "playlist-modify-private",
//	    "user-modify-playback-state",
//	}, "state-token")
//	fmt.Println("Please visit:", url)
func (a *AuthService) AuthURL(scopes []string, state string) string {
	q := url.Values{}
	q.Set("client_id", a.client.clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", a.client.redirectURI)
	if len(scopes) > 0 {
		q.Set("scope", strings.Join(scopes, " "))
	}
	if state != "" {
		q.Set("state", state)
	}
	return a.client.accountsURL + "/authorize?" + q.Encode()
}

// Exchange trades an authorization code for an access and refresh token.
//
// On success the access token is installed on the client, so
// subsequent service calls are authenticated. The refresh token
// should be persisted for later Refresh calls.
func (a *AuthService) Exchange(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", a.client.redirectURI)

	token, err := a.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("catalog: code exchange failed: %w", err)
	}

	a.client.SetAccessToken(token.AccessToken)
	return token, nil
}

// Refresh obtains a fresh access token from a stored refresh token.
//
// The catalog may or may not rotate the refresh token; when the
// response omits one, the caller should keep using the old token.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("catalog: refresh token required")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	token, err := a.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("catalog: token refresh failed: %w", err)
	}

	a.client.SetAccessToken(token.AccessToken)
	return token, nil
}

// tokenRequest posts a form to the accounts token endpoint using
// client-credential basic auth.
func (a *AuthService) tokenRequest(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", a.client.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(a.client.clientID, a.client.clientSecret)

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Message: decodeTokenError(body)}
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("received empty access token")
	}

	return &token, nil
}

// decodeTokenError extracts the message from an accounts error body.
// The accounts endpoint uses a flat {"error","error_description"}
// shape, unlike the Web API envelope.
func decodeTokenError(body []byte) string {
	var envelope struct {
		Err         string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Err != "" {
		if envelope.Description != "" {
			return envelope.Err + ": " + envelope.Description
		}
		return envelope.Err
	}
	return string(body)
}
