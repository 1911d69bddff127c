package discordauth

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/giantswarm/discord-oauth/internal/testutil"
)

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return b
}

func TestParseUser(t *testing.T) {
	user, err := ParseUser(mustMarshal(t, testutil.UserPayload()))
	if err != nil {
		t.Fatalf("ParseUser() error = %v", err)
	}

	if user.ID != testutil.TestUserID {
		t.Errorf("ID = %q, want %q", user.ID, testutil.TestUserID)
	}
	if user.Username != testutil.TestUsername {
		t.Errorf("Username = %q, want %q", user.Username, testutil.TestUsername)
	}
	if user.Avatar == nil || *user.Avatar != testutil.TestAvatarHash {
		t.Errorf("Avatar = %v, want %q", user.Avatar, testutil.TestAvatarHash)
	}
	if user.PublicFlags != 64 || user.Flags != 64 {
		t.Errorf("PublicFlags, Flags = %d, %d, want 64, 64", user.PublicFlags, user.Flags)
	}
	if user.AccentColor == nil || *user.AccentColor != 16711680 {
		t.Errorf("AccentColor = %v, want 16711680", user.AccentColor)
	}
	if !user.MFAEnabled {
		t.Error("MFAEnabled = false, want true")
	}
	if user.Locale == nil || *user.Locale != "en-US" {
		t.Errorf("Locale = %v, want en-US", user.Locale)
	}
	if user.PremiumType != PremiumFull {
		t.Errorf("PremiumType = %v, want %v", user.PremiumType, PremiumFull)
	}
	if user.Email == nil || *user.Email != "nelly@discord.com" {
		t.Errorf("Email = %v, want nelly@discord.com", user.Email)
	}
	if user.Verified == nil || !*user.Verified {
		t.Errorf("Verified = %v, want true", user.Verified)
	}
}

func TestParseUser_LargeSnowflakeStaysExact(t *testing.T) {
	body := `{"id":"1234567890123456789","username":"a","discriminator":"0","public_flags":0,"flags":0,"mfa_enabled":false,"premium_type":0}`

	user, err := ParseUser([]byte(body))
	if err != nil {
		t.Fatalf("ParseUser() error = %v", err)
	}
	if user.ID != "1234567890123456789" {
		t.Errorf("ID = %q, want %q", user.ID, "1234567890123456789")
	}
}

func TestParseUser_OptionalFields(t *testing.T) {
	optional := []string{"avatar", "banner", "accent_color", "global_name", "locale", "email", "verified"}

	for _, field := range optional {
		t.Run(field+" absent", func(t *testing.T) {
			if _, err := ParseUser(mustMarshal(t, testutil.Without(testutil.UserPayload(), field))); err != nil {
				t.Errorf("ParseUser() error = %v, want nil", err)
			}
		})
		t.Run(field+" null", func(t *testing.T) {
			if _, err := ParseUser(mustMarshal(t, testutil.With(testutil.UserPayload(), field, nil))); err != nil {
				t.Errorf("ParseUser() error = %v, want nil", err)
			}
		})
	}
}

func TestParseUser_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"missing id", testutil.Without(testutil.UserPayload(), "id"), "id"},
		{"numeric id", testutil.With(testutil.UserPayload(), "id", 80351110224678912), "id"},
		{"missing username", testutil.Without(testutil.UserPayload(), "username"), "username"},
		{"null username", testutil.With(testutil.UserPayload(), "username", nil), "username"},
		{"missing discriminator", testutil.Without(testutil.UserPayload(), "discriminator"), "discriminator"},
		{"public_flags as string", testutil.With(testutil.UserPayload(), "public_flags", "64"), "public_flags"},
		{"missing flags", testutil.Without(testutil.UserPayload(), "flags"), "flags"},
		{"mfa_enabled as string", testutil.With(testutil.UserPayload(), "mfa_enabled", "true"), "mfa_enabled"},
		{"missing mfa_enabled", testutil.Without(testutil.UserPayload(), "mfa_enabled"), "mfa_enabled"},
		{"missing premium_type", testutil.Without(testutil.UserPayload(), "premium_type"), "premium_type"},
		{"avatar as number", testutil.With(testutil.UserPayload(), "avatar", 1), "avatar"},
		{"accent_color as string", testutil.With(testutil.UserPayload(), "accent_color", "#ff0000"), "accent_color"},
		{"accent_color fractional", testutil.With(testutil.UserPayload(), "accent_color", 1.25), "accent_color"},
		{"verified as number", testutil.With(testutil.UserPayload(), "verified", 1), "verified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUser(mustMarshal(t, tt.payload))

			var sv *SchemaViolation
			if !errors.As(err, &sv) {
				t.Fatalf("ParseUser() error = %v, want *SchemaViolation", err)
			}
			if sv.Model != userModel {
				t.Errorf("Model = %q, want %q", sv.Model, userModel)
			}
			if sv.Field != tt.field {
				t.Errorf("Field = %q, want %q", sv.Field, tt.field)
			}
		})
	}
}

func TestUser_AvatarURL(t *testing.T) {
	hash := "abc123"
	empty := ""

	tests := []struct {
		name   string
		avatar *string
		want   string
	}{
		{"avatar set", &hash, "https://cdn.discordapp.com/avatars/42/abc123.png"},
		{"avatar null", nil, ""},
		{"avatar empty", &empty, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: "42", Avatar: tt.avatar}
			if got := u.AvatarURL(); got != tt.want {
				t.Errorf("AvatarURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_BannerURL(t *testing.T) {
	hash := "06c16474723fe537c283b8efa61a30c8"

	u := &User{ID: "80351110224678912", Banner: &hash}
	want := "https://cdn.discordapp.com/banners/80351110224678912/06c16474723fe537c283b8efa61a30c8.png"
	if got := u.BannerURL(); got != want {
		t.Errorf("BannerURL() = %q, want %q", got, want)
	}

	u.Banner = nil
	if got := u.BannerURL(); got != "" {
		t.Errorf("BannerURL() = %q, want empty", got)
	}
}

func TestUser_DerivedURLsFollowFields(t *testing.T) {
	user, err := ParseUser(mustMarshal(t, testutil.With(testutil.UserPayload(), "avatar", "abc123")))
	if err != nil {
		t.Fatalf("ParseUser() error = %v", err)
	}

	want := "https://cdn.discordapp.com/avatars/" + testutil.TestUserID + "/abc123.png"
	if got := user.AvatarURL(); got != want {
		t.Errorf("AvatarURL() = %q, want %q", got, want)
	}
}

func TestUser_DisplayName(t *testing.T) {
	global := "Nelly the Great"
	empty := ""

	tests := []struct {
		name       string
		globalName *string
		want       string
	}{
		{"global name set", &global, "Nelly the Great"},
		{"global name null", nil, "Nelly"},
		{"global name empty", &empty, "Nelly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Username: "Nelly", GlobalName: tt.globalName}
			if got := u.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPremiumType(t *testing.T) {
	tests := []struct {
		premium     PremiumType
		wantString  string
		wantPremium bool
	}{
		{PremiumNone, "none", false},
		{PremiumClassic, "classic", true},
		{PremiumFull, "full", true},
		{PremiumBasic, "basic", true},
		{PremiumType(9), "unknown(9)", true},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			if got := tt.premium.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			u := &User{PremiumType: tt.premium}
			if got := u.HasPremium(); got != tt.wantPremium {
				t.Errorf("HasPremium() = %v, want %v", got, tt.wantPremium)
			}
		})
	}
}
