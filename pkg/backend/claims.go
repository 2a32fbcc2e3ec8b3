package backend

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims decodes the access token payload. The signature is not
// checked; the backend is the only party that validates its own tokens.
func accessClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	return claims, nil
}

// normalize fills ExpiresAt from the token when the response omitted it and
// rejects sessions whose access token cannot be decoded.
func normalize(s *Session, nowUnix int64) error {
	if s == nil || s.AccessToken == "" {
		return ErrInvalidSession
	}
	claims, err := accessClaims(s.AccessToken)
	if err != nil {
		return err
	}
	if s.ExpiresAt == 0 {
		switch {
		case claims.ExpiresAt != nil:
			s.ExpiresAt = claims.ExpiresAt.Unix()
		case s.ExpiresIn > 0:
			s.ExpiresAt = nowUnix + s.ExpiresIn
		}
	}
	if s.User == nil && claims.Subject != "" {
		s.User = &User{ID: claims.Subject}
	}
	return nil
}
