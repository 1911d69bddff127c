package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Paths served by DiscordServer, mirroring discord.com.
const (
	AuthorizePath = "/api/oauth2/authorize"
	TokenPath     = "/api/oauth2/token"
	UserPath      = "/api/v10/users/@me"
)

// Fixture values returned by the default handlers.
const (
	TestAccessToken  = "6qrZcUqja7812RVdnEKjpzOL4CvHBFG"
	TestRefreshToken = "D43f5y0ahjqew82jZ4NViEr2YafMKhue"
	TestUserID       = "80351110224678912"
	TestUsername     = "Nelly"
	TestAvatarHash   = "8342729096ea3675442027381ff50dfe"
)

// RecordedRequest is a request seen by DiscordServer.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Form   url.Values
}

// DiscordServer is an httptest server that answers like Discord's token and
// user endpoints and records every request it receives.
type DiscordServer struct {
	*httptest.Server

	mu           sync.Mutex
	tokenHandler http.HandlerFunc
	userHandler  http.HandlerFunc
	requests     []RecordedRequest
}

// NewDiscordServer starts a DiscordServer that is closed when the test ends.
// The default handlers return TokenPayload and UserPayload.
func NewDiscordServer(t *testing.T) *DiscordServer {
	t.Helper()

	s := &DiscordServer{
		tokenHandler: JSONHandler(http.StatusOK, TokenPayload()),
		userHandler:  JSONHandler(http.StatusOK, UserPayload()),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *DiscordServer) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Form:   r.PostForm,
	})
	tokenHandler, userHandler := s.tokenHandler, s.userHandler
	s.mu.Unlock()

	switch r.URL.Path {
	case TokenPath:
		tokenHandler(w, r)
	case UserPath:
		userHandler(w, r)
	default:
		http.NotFound(w, r)
	}
}

// SetTokenHandler replaces the token endpoint handler.
func (s *DiscordServer) SetTokenHandler(h http.HandlerFunc) {
	s.mu.Lock()
	s.tokenHandler = h
	s.mu.Unlock()
}

// SetUserHandler replaces the user endpoint handler.
func (s *DiscordServer) SetUserHandler(h http.HandlerFunc) {
	s.mu.Lock()
	s.userHandler = h
	s.mu.Unlock()
}

// AuthorizeURL returns the server's authorization endpoint URL.
func (s *DiscordServer) AuthorizeURL() string {
	return s.URL + AuthorizePath
}

// TokenURL returns the server's token endpoint URL.
func (s *DiscordServer) TokenURL() string {
	return s.URL + TokenPath
}

// UserURL returns the server's user endpoint URL.
func (s *DiscordServer) UserURL() string {
	return s.URL + UserPath
}

// Requests returns a copy of all recorded requests.
func (s *DiscordServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests were made to path.
func (s *DiscordServer) RequestCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// JSONHandler responds with status and v encoded as JSON.
func JSONHandler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RawHandler responds with status and body exactly as given.
func RawHandler(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// TokenPayload returns a token endpoint response as Discord sends it.
func TokenPayload() map[string]any {
	return map[string]any{
		"access_token":  TestAccessToken,
		"token_type":    "Bearer",
		"expires_in":    604800,
		"refresh_token": TestRefreshToken,
		"scope":         "identify email",
	}
}

// UserPayload returns a /users/@me response as Discord sends it with the
// identify and email scopes.
func UserPayload() map[string]any {
	return map[string]any{
		"id":            TestUserID,
		"username":      TestUsername,
		"avatar":        TestAvatarHash,
		"discriminator": "0",
		"public_flags":  64,
		"flags":         64,
		"banner":        "06c16474723fe537c283b8efa61a30c8",
		"accent_color":  16711680,
		"global_name":   "Nelly the Great",
		"mfa_enabled":   true,
		"locale":        "en-US",
		"premium_type":  2,
		"email":         "nelly@discord.com",
		"verified":      true,
	}
}

// Without returns a copy of payload with the named keys removed.
func Without(payload map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// With returns a copy of payload with key set to value (nil for JSON null).
func With(payload map[string]any, key string, value any) map[string]any {
	out := Without(payload)
	out[key] = value
	return out
}
