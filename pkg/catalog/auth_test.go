package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthURL(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURI:  "http://localhost:3000/callback",
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	url := client.Auth().AuthURL([]string{"playlist-modify-private", "user-read-playback-state"}, "xyz")

	for _, want := range []string{
		"client_id=test-client",
		"response_type=code",
		"redirect_uri=http%3A%2F%2Flocalhost%3A3000%2Fcallback",
		"scope=playlist-modify-private+user-read-playback-state",
		"state=xyz",
	} {
		if !strings.Contains(url, want) {
			t.Errorf("auth URL missing %q: %s", want, url)
		}
	}
}

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/token" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			// Client credentials travel as basic auth.
			wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-client:test-secret"))
			if auth := r.Header.Get("Authorization"); auth != wantAuth {
				t.Errorf("unexpected authorization header: %s", auth)
			}

			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if grant := r.FormValue("grant_type"); grant != "authorization_code" {
				t.Errorf("expected grant_type authorization_code, got %s", grant)
			}
			if code := r.FormValue("code"); code != "auth-code" {
				t.Errorf("expected code auth-code, got %s", code)
			}

			fmt.Fprint(w, `{
				"access_token": "new-access",
				"token_type": "Bearer",
				"refresh_token": "new-refresh",
				"expires_in": 3600,
				"scope": "playlist-modify-private"
			}`)
		}))
		defer server.Close()

		client, err := NewClient(Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURI:  "http://localhost:3000/callback",
			AccountsURL:  server.URL,
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		token, err := client.Auth().Exchange(context.Background(), "auth-code")
		if err != nil {
			t.Fatalf("Exchange() error: %v", err)
		}
		if token.AccessToken != "new-access" || token.RefreshToken != "new-refresh" {
			t.Errorf("unexpected token: %+v", token)
		}
		if client.GetAccessToken() != "new-access" {
			t.Errorf("expected access token installed on client, got %s", client.GetAccessToken())
		}
	})

	t.Run("invalid code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_grant", "error_description": "Invalid authorization code"}`)
		}))
		defer server.Close()

		client, err := NewClient(Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			AccountsURL:  server.URL,
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.Auth().Exchange(context.Background(), "bogus")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "invalid_grant") {
			t.Errorf("expected invalid_grant in error, got %v", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if grant := r.FormValue("grant_type"); grant != "refresh_token" {
				t.Errorf("expected grant_type refresh_token, got %s", grant)
			}
			if rt := r.FormValue("refresh_token"); rt != "stored-refresh" {
				t.Errorf("expected refresh_token stored-refresh, got %s", rt)
			}
			fmt.Fprint(w, `{"access_token": "refreshed", "token_type": "Bearer", "expires_in": 3600}`)
		}))
		defer server.Close()

		client, err := NewClient(Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			AccountsURL:  server.URL,
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		token, err := client.Auth().Refresh(context.Background(), "stored-refresh")
		if err != nil {
			t.Fatalf("Refresh() error: %v", err)
		}
		if token.AccessToken != "refreshed" {
			t.Errorf("unexpected access token: %s", token.AccessToken)
		}
		if client.GetAccessToken() != "refreshed" {
			t.Errorf("expected access token installed on client, got %s", client.GetAccessToken())
		}
	})

	t.Run("missing refresh token", func(t *testing.T) {
		client, err := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		if _, err := client.Auth().Refresh(context.Background(), ""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
