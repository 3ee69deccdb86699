package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/pkg/catalog"
)

// scopes covers playlist sync and the quiz UI's playback controls.
var authScopes = []string{
	"playlist-modify-public",
	"playlist-modify-private",
	"user-read-playback-state",
	"user-modify-playback-state",
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with the music catalog",
	Long: `Authenticate with the music catalog to enable playlist sync and
playback control.

This command will guide you through the authorization-code flow:
1. You'll be prompted for your catalog API client ID and secret
2. A browser URL will be provided for you to authorize the application
3. A local listener on the redirect URI receives the authorization code
4. The code is exchanged for tokens and saved to your config file

Register an application (with the redirect URI from your config) in
the catalog's developer dashboard to get credentials.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Catalog Authentication")
	fmt.Println("======================")
	fmt.Println()

	// Check if we already have credentials
	if cfg.Catalog.ClientID != "" && cfg.Catalog.ClientSecret != "" {
		fmt.Printf("Found existing API credentials.\n")
		fmt.Printf("Client ID: %s\n", cfg.Catalog.ClientID)
		fmt.Print("\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.Catalog.ClientID = ""
			cfg.Catalog.ClientSecret = ""
		}
	}

	// Prompt for client ID if not set
	if cfg.Catalog.ClientID == "" {
		fmt.Print("Enter your catalog Client ID: ")
		clientID, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		cfg.Catalog.ClientID = strings.TrimSpace(clientID)
	}

	// Prompt for client secret if not set
	if cfg.Catalog.ClientSecret == "" {
		fmt.Print("Enter your catalog Client Secret: ")
		clientSecret, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		cfg.Catalog.ClientSecret = strings.TrimSpace(clientSecret)
	}

	if cfg.Catalog.ClientID == "" || cfg.Catalog.ClientSecret == "" {
		return fmt.Errorf("client ID and secret are required")
	}

	client, err := catalog.NewClient(catalog.Config{
		ClientID:     cfg.Catalog.ClientID,
		ClientSecret: cfg.Catalog.ClientSecret,
		RedirectURI:  cfg.Catalog.RedirectURI,
	})
	if err != nil {
		return err
	}

	state := fmt.Sprintf("venuesync-%d", time.Now().UnixNano())
	authURL := client.Auth().AuthURL(authScopes, state)

	fmt.Println("\nPlease visit this URL to authorize venuesync:")
	fmt.Printf("\n  %s\n\n", authURL)
	fmt.Println("Waiting for the authorization redirect...")

	code, err := waitForCallback(ctx, cfg.Catalog.RedirectURI, state)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Println("Exchanging authorization code...")
	token, err := client.Auth().Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("code exchange failed: %w", err)
	}

	cfg.Catalog.RefreshToken = token.RefreshToken
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("\nAuthentication successful! Tokens saved.")
	fmt.Println("You can now run 'venuesync run'.")
	return nil
}

// waitForCallback runs a one-shot HTTP listener on the redirect URI
// and returns the authorization code it receives. The state parameter
// must round-trip unchanged.
func waitForCallback(ctx context.Context, redirectURI, wantState string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("invalid redirect URI %q: %w", redirectURI, err)
	}

	listener, err := net.Listen("tcp", u.Host)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", u.Host, err)
	}

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != u.Path {
				http.NotFound(w, r)
				return
			}

			q := r.URL.Query()
			if errMsg := q.Get("error"); errMsg != "" {
				fmt.Fprintln(w, "Authorization denied. You can close this window.")
				results <- result{err: fmt.Errorf("authorization denied: %s", errMsg)}
				return
			}
			if state := q.Get("state"); state != wantState {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- result{err: errors.New("state parameter mismatch")}
				return
			}

			code := q.Get("code")
			if code == "" {
				http.Error(w, "missing code", http.StatusBadRequest)
				results <- result{err: errors.New("callback missing authorization code")}
				return
			}

			fmt.Fprintln(w, "Authorization complete. You can close this window.")
			results <- result{code: code}
		}),
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			results <- result{err: err}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		return res.code, res.err
	}
}
