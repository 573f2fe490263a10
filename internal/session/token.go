package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSubject is returned when a token carries no "sub" claim.
var ErrNoSubject = errors.New("token has no subject")

// Subject returns the "sub" claim of a JWT without verifying its signature.
// The backend verifies tokens; the client only needs to know who it is.
func Subject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decoding token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("decoding token subject: %w", err)
	}
	if sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}

// UserID returns the token subject as a numeric user id.
func UserID(token string) (int, error) {
	sub, err := Subject(token)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return 0, fmt.Errorf("token subject %q is not a user id: %w", sub, err)
	}
	return id, nil
}
