package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthorized is returned by a UserNameLookup when the server rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// State is either LoggedOut or LoggedIn.
type State interface {
	isState()
}

// LoggedOut is the guest state.
type LoggedOut struct{}

// LoggedIn is the state of a recognised user.
type LoggedIn struct {
	UserName string
}

func (LoggedOut) isState() {}
func (LoggedIn) isState()  {}

// Match dispatches on s. A nil State is treated as LoggedOut.
func Match[R any](s State, loggedOut func() R, loggedIn func(LoggedIn) R) R {
	switch st := s.(type) {
	case LoggedIn:
		return loggedIn(st)
	case LoggedOut, nil:
		return loggedOut()
	default:
		panic(fmt.Sprintf("session: unknown state %T", s))
	}
}

// IsLoggedIn reports whether s is LoggedIn.
func IsLoggedIn(s State) bool {
	return Match(s, func() bool { return false }, func(LoggedIn) bool { return true })
}

// UserNameLookup asks the server who the current token belongs to.
type UserNameLookup func(ctx context.Context) (string, error)

// Resolve determines the session state from the stored credentials. A token
// the server rejects is cleared. Other lookup failures leave the token in
// place, return LoggedOut and report the error.
func Resolve(ctx context.Context, provider Provider, lookup UserNameLookup) (State, error) {
	if _, ok := provider.Token(); !ok {
		return LoggedOut{}, nil
	}

	name, err := lookup(ctx)
	switch {
	case errors.Is(err, ErrUnauthorized):
		if clearErr := provider.Clear(); clearErr != nil {
			return LoggedOut{}, fmt.Errorf("clearing rejected token: %w", clearErr)
		}
		return LoggedOut{}, nil
	case err != nil:
		return LoggedOut{}, fmt.Errorf("resolving session: %w", err)
	case name == "":
		return LoggedOut{}, nil
	default:
		return LoggedIn{UserName: name}, nil
	}
}

// Logout clears the stored token and returns the guest state.
func Logout(provider Provider) (State, error) {
	if err := provider.Clear(); err != nil {
		return nil, err
	}
	return LoggedOut{}, nil
}
