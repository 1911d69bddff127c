package discordauth

import "fmt"

const userModel = "user"

// CDN URL templates for user images.
const (
	avatarURLFormat = "https://cdn.discordapp.com/avatars/%s/%s.png"
	bannerURLFormat = "https://cdn.discordapp.com/banners/%s/%s.png"
)

// PremiumType is the user's Nitro subscription level.
type PremiumType int64

// Premium types as reported by Discord.
const (
	PremiumNone    PremiumType = 0
	PremiumClassic PremiumType = 1
	PremiumFull    PremiumType = 2
	PremiumBasic   PremiumType = 3
)

// String returns a human-readable name for the premium type.
func (p PremiumType) String() string {
	switch p {
	case PremiumNone:
		return "none"
	case PremiumClassic:
		return "classic"
	case PremiumFull:
		return "full"
	case PremiumBasic:
		return "basic"
	default:
		return fmt.Sprintf("unknown(%d)", int64(p))
	}
}

// User is the profile returned by Discord's /users/@me endpoint.
//
// ID is a snowflake. It is kept as a string because its values exceed the
// range some JSON consumers can represent exactly.
type User struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	Avatar        *string     `json:"avatar"`
	Discriminator string      `json:"discriminator"`
	PublicFlags   int64       `json:"public_flags"`
	Flags         int64       `json:"flags"`
	Banner        *string     `json:"banner"`
	AccentColor   *int64      `json:"accent_color"`
	GlobalName    *string     `json:"global_name"`
	MFAEnabled    bool        `json:"mfa_enabled"`
	Locale        *string     `json:"locale"`
	PremiumType   PremiumType `json:"premium_type"`

	// Only present when the token carries the "email" scope.
	Email    *string `json:"email,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
}

// ParseUser validates a /users/@me response body.
func ParseUser(body []byte) (*User, error) {
	f, err := decodeFields(userModel, body)
	if err != nil {
		return nil, err
	}
	return userFromFields(f)
}

func userFromFields(f *fields) (*User, error) {
	var (
		u   User
		err error
	)
	if u.ID, err = f.requiredString("id"); err != nil {
		return nil, err
	}
	if u.Username, err = f.requiredString("username"); err != nil {
		return nil, err
	}
	if u.Avatar, err = f.optionalString("avatar"); err != nil {
		return nil, err
	}
	if u.Discriminator, err = f.requiredString("discriminator"); err != nil {
		return nil, err
	}
	if u.PublicFlags, err = f.requiredInt("public_flags"); err != nil {
		return nil, err
	}
	if u.Flags, err = f.requiredInt("flags"); err != nil {
		return nil, err
	}
	if u.Banner, err = f.optionalString("banner"); err != nil {
		return nil, err
	}
	if u.AccentColor, err = f.optionalInt("accent_color"); err != nil {
		return nil, err
	}
	if u.GlobalName, err = f.optionalString("global_name"); err != nil {
		return nil, err
	}
	if u.MFAEnabled, err = f.requiredBool("mfa_enabled"); err != nil {
		return nil, err
	}
	if u.Locale, err = f.optionalString("locale"); err != nil {
		return nil, err
	}
	premium, err := f.requiredInt("premium_type")
	if err != nil {
		return nil, err
	}
	u.PremiumType = PremiumType(premium)
	if u.Email, err = f.optionalString("email"); err != nil {
		return nil, err
	}
	if u.Verified, err = f.optionalBool("verified"); err != nil {
		return nil, err
	}
	return &u, nil
}

// AvatarURL returns the CDN URL of the user's avatar, or "" when none is set.
func (u *User) AvatarURL() string {
	if u.Avatar == nil || *u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf(avatarURLFormat, u.ID, *u.Avatar)
}

// BannerURL returns the CDN URL of the user's banner, or "" when none is set.
func (u *User) BannerURL() string {
	if u.Banner == nil || *u.Banner == "" {
		return ""
	}
	return fmt.Sprintf(bannerURLFormat, u.ID, *u.Banner)
}

// DisplayName returns the global display name, falling back to the username.
func (u *User) DisplayName() string {
	if u.GlobalName != nil && *u.GlobalName != "" {
		return *u.GlobalName
	}
	return u.Username
}

// HasPremium reports whether the user has any Nitro subscription.
func (u *User) HasPremium() bool {
	return u.PremiumType > PremiumNone
}
