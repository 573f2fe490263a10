package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bialog/bialog/internal/session"
)

// Status sentinels carried by FetchError.
var (
	ErrUnauthorized    = session.ErrUnauthorized
	ErrNotFound        = errors.New("not found")
	ErrAlreadyFavorite = errors.New("brand is already a favorite")
	ErrBadStatus       = errors.New("unexpected status")
	ErrDecode          = errors.New("decoding response")
	ErrInvalidScore    = fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
)

// FetchError is the only error kind returned by Client. StatusCode is zero
// for transport failures.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// statusError maps an HTTP error status to a sentinel.
func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrBadStatus
	}
}
