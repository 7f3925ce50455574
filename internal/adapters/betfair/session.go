package betfair

// session.go — Betfair interactive login session.
//
// Exchanges username/password/app key for a session token and refreshes it
// with keepAlive. The session is constructed explicitly in main and shared
// by reference across every concurrent monitor — never a package singleton,
// so the core stays testable with a fake session.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultIdentityURL = "https://identitysso.betfair.com/api"

	// Betfair expires idle sessions after ~20 minutes (international).
	keepAliveInterval = 15 * time.Minute
)

// Session holds the shared authenticated state for the exchange.
type Session struct {
	http        *http.Client
	identityURL string
	appKey      string
	username    string
	password    string

	mu    sync.RWMutex
	token string
}

// NewSession creates an unauthenticated session. Call Login before use.
// If identityURL is empty the production endpoint is used.
func NewSession(identityURL, appKey, username, password string) *Session {
	if identityURL == "" {
		identityURL = defaultIdentityURL
	}
	return &Session{
		http:        &http.Client{Timeout: 10 * time.Second},
		identityURL: identityURL,
		appKey:      appKey,
		username:    username,
		password:    password,
	}
}

type loginResponse struct {
	Token   string `json:"token"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

// Login authenticates with the interactive endpoint and stores the token.
func (s *Session) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", s.username)
	form.Set("password", s.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.identityURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("betfair.Login: %w", err)
	}
	req.Header.Set("X-Application", s.appKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("betfair.Login: %w", err)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("betfair.Login: decode response: %w", err)
	}
	if lr.Status != "SUCCESS" || lr.Token == "" {
		return fmt.Errorf("betfair.Login: status %s error %s", lr.Status, lr.Error)
	}

	s.mu.Lock()
	s.token = lr.Token
	s.mu.Unlock()

	slog.Info("betfair login OK", "product", lr.Product)
	return nil
}

// KeepAlive refreshes the current token. The caller is expected to run it on
// an interval (see RunKeepAlive).
func (s *Session) KeepAlive(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.identityURL+"/keepAlive", nil)
	if err != nil {
		return fmt.Errorf("betfair.KeepAlive: %w", err)
	}
	req.Header.Set("X-Application", s.appKey)
	req.Header.Set("X-Authentication", s.Token())
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("betfair.KeepAlive: %w", err)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("betfair.KeepAlive: decode response: %w", err)
	}
	if lr.Status != "SUCCESS" {
		return fmt.Errorf("betfair.KeepAlive: status %s error %s", lr.Status, lr.Error)
	}
	if lr.Token != "" {
		s.mu.Lock()
		s.token = lr.Token
		s.mu.Unlock()
	}
	return nil
}

// RunKeepAlive refreshes the session on an interval until ctx is cancelled.
// A failed refresh re-attempts a full login; failures are logged and retried
// on the next tick rather than crashing the process.
func (s *Session) RunKeepAlive(ctx context.Context) {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.KeepAlive(ctx); err != nil {
				slog.Warn("session keep-alive failed, re-logging in", "err", err)
				if err := s.Login(ctx); err != nil {
					slog.Error("session re-login failed", "err", err)
				}
			}
		}
	}
}

// Token returns the current session token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// AppKey returns the application key of this session.
func (s *Session) AppKey() string {
	return s.appKey
}
