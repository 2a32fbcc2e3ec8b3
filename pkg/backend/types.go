package backend

import "time"

// AuthEvent names a session change.
type AuthEvent string

const (
	EventInitialSession AuthEvent = "INITIAL_SESSION"
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEvent = "USER_UPDATED"
)

// AuthListener receives session changes. session is nil after sign-out.
type AuthListener func(event AuthEvent, session *Session)

// User is the authenticated account as returned by the auth API.
type User struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud,omitempty"`
	Role             string         `json:"role,omitempty"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

// Session is an authenticated session. Values are replaced wholesale and
// never mutated after they are handed out.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Expiry returns the access token expiry time.
func (s *Session) Expiry() time.Time {
	return time.Unix(s.ExpiresAt, 0)
}

// UserID returns the session's user id or "" when there is none.
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// Email returns the session's user email or "" when there is none.
func (s *Session) Email() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Email
}

// SignUpResult is the outcome of SignUp. Session is nil unless the backend
// confirms accounts automatically.
type SignUpResult struct {
	User    *User
	Session *Session
}
