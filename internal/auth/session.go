// Package auth runs the OAuth installed-app flow for read-only Google
// Calendar access and keeps the resulting client for the process.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	gosync "sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

var scopes = []string{calendar.CalendarReadonlyScope}

// ErrNoCredentials is returned when the OAuth client file is missing.
var ErrNoCredentials = errors.New("google credentials not found")

// Session owns the authorization state. The HTTP client is built on the
// first successful Client call and reused afterwards.
type Session struct {
	CredentialsPath string
	TokenPath       string
	// Authorize obtains a token interactively; nil uses the browser flow.
	Authorize func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

	mu     gosync.Mutex
	client *http.Client
}

func NewSession(credentialsPath, tokenPath string) *Session {
	return &Session{CredentialsPath: credentialsPath, TokenPath: tokenPath}
}

// HasCredentials reports whether the OAuth client file exists.
func (s *Session) HasCredentials() bool {
	_, err := os.Stat(s.CredentialsPath)
	return err == nil
}

// SignedIn reports whether a token has been stored.
func (s *Session) SignedIn() bool {
	_, err := os.Stat(s.TokenPath)
	return err == nil
}

// Ready reports whether Client has already succeeded in this process.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

func (s *Session) Client(ctx context.Context) (*http.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(s.TokenPath)
	if err != nil {
		authorize := s.Authorize
		if authorize == nil {
			authorize = getTokenFromWeb
		}
		tok, err = authorize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("authorize: %w", err)
		}
		if err := saveToken(s.TokenPath, tok); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
	}
	s.client = cfg.Client(ctx, tok)
	return s.client, nil
}

// SignOut forgets the stored token and the cached client.
func (s *Session) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = nil
	if err := os.Remove(s.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *Session) config() (*oauth2.Config, error) {
	// #nosec G304 -- credentials path is user-configured
	creds, err := os.ReadFile(s.CredentialsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoCredentials, s.CredentialsPath)
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(creds, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return cfg, nil
}
