// Package mock provides a mock implementation of the discordauth.Flow
// interface for testing login and callback handlers without Discord.
package mock

import (
	"context"
	"fmt"
	"sync"

	discordauth "github.com/giantswarm/discord-oauth"
)

var _ discordauth.Flow = (*Flow)(nil)

// Flow is a mock implementation of discordauth.Flow for testing
type Flow struct {
	// AuthorizationURLFunc is called when AuthorizationURL() or
	// AuthorizationURLWithState() is invoked. state is "" for the former.
	AuthorizationURLFunc func(state string) string

	// ExchangeCodeFunc is called when ExchangeCode() is invoked
	ExchangeCodeFunc func(ctx context.Context, code string) (*discordauth.Token, error)

	// FetchUserFunc is called when FetchUser() is invoked
	FetchUserFunc func(ctx context.Context, token *discordauth.Token) (*discordauth.User, error)

	// CallCounts tracks how many times each method was called
	CallCounts map[string]int

	// mu protects CallCounts from concurrent access
	mu sync.RWMutex
}

// NewFlow creates a new mock flow with default implementations
func NewFlow() *Flow {
	return &Flow{
		CallCounts: make(map[string]int),
		AuthorizationURLFunc: func(state string) string {
			if state == "" {
				return "https://mock.example.com/authorize"
			}
			return "https://mock.example.com/authorize?state=" + state
		},
		ExchangeCodeFunc: func(_ context.Context, _ string) (*discordauth.Token, error) {
			return &discordauth.Token{
				AccessToken:  "mock-access-token",
				TokenType:    "Bearer",
				ExpiresIn:    604800,
				Scope:        "identify email",
				RefreshToken: "mock-refresh-token",
			}, nil
		},
		FetchUserFunc: func(_ context.Context, _ *discordauth.Token) (*discordauth.User, error) {
			email := "mock@example.com"
			verified := true
			return &discordauth.User{
				ID:            "100000000000000001",
				Username:      "mockuser",
				Discriminator: "0",
				Email:         &email,
				Verified:      &verified,
			}, nil
		},
	}
}

// record counts a call. Methods release the lock before invoking the
// configured func, which may call back into the mock.
func (m *Flow) record(method string) {
	m.mu.Lock()
	if m.CallCounts == nil {
		m.CallCounts = make(map[string]int)
	}
	m.CallCounts[method]++
	m.mu.Unlock()
}

// AuthorizationURL returns the URL to redirect the user's browser to
func (m *Flow) AuthorizationURL() string {
	m.record("AuthorizationURL")
	m.mu.RLock()
	fn := m.AuthorizationURLFunc
	m.mu.RUnlock()
	if fn == nil {
		return "https://mock.example.com/authorize"
	}
	return fn("")
}

// AuthorizationURLWithState returns the authorization URL carrying state
func (m *Flow) AuthorizationURLWithState(state string) string {
	m.record("AuthorizationURLWithState")
	m.mu.RLock()
	fn := m.AuthorizationURLFunc
	m.mu.RUnlock()
	if fn == nil {
		return "https://mock.example.com/authorize?state=" + state
	}
	return fn(state)
}

// ExchangeCode exchanges an authorization code for a token
func (m *Flow) ExchangeCode(ctx context.Context, code string) (*discordauth.Token, error) {
	m.record("ExchangeCode")
	m.mu.RLock()
	fn := m.ExchangeCodeFunc
	m.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("ExchangeCodeFunc not configured")
	}
	return fn(ctx, code)
}

// FetchUser returns the user the token was issued to
func (m *Flow) FetchUser(ctx context.Context, token *discordauth.Token) (*discordauth.User, error) {
	m.record("FetchUser")
	m.mu.RLock()
	fn := m.FetchUserFunc
	m.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("FetchUserFunc not configured")
	}
	return fn(ctx, token)
}

// ResetCallCounts resets all call counters
func (m *Flow) ResetCallCounts() {
	m.mu.Lock()
	m.CallCounts = make(map[string]int)
	m.mu.Unlock()
}

// GetCallCount returns the number of times a method was called
func (m *Flow) GetCallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCounts[method]
}
