package registry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

var (
	// ErrUnreachable is returned when the registry cannot be reached at all.
	ErrUnreachable = errors.New("registry is unreachable")
	// ErrAuthRequired is returned when the registry wants credentials that
	// were not configured.
	ErrAuthRequired = errors.New("registry requires authentication")
	// ErrPermissionDenied is returned when the configured credentials are
	// rejected or lack read access.
	ErrPermissionDenied = errors.New("registry access denied")
	// ErrNotFound is returned when the requested repository or manifest does
	// not exist.
	ErrNotFound = errors.New("not found in registry")
)

// classify maps a transport-level failure onto one of the sentinel errors,
// keeping the underlying error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var terr *transport.Error
	if errors.As(err, &terr) {
		switch terr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrAuthRequired, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}
