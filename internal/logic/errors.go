package logic

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two public operations. User-input errors
// (ErrPlayerNotFound, ErrInvalidPosition, ErrMissingFeature) are surfaced to
// callers for user-facing messaging; ErrArtifactLoad is an infrastructure
// failure and must stay distinguishable from them.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPosition = errors.New("invalid position")
	ErrMissingFeature  = errors.New("missing feature")
	ErrEmptyFeatureSet = errors.New("empty feature set")
	ErrArtifactLoad    = errors.New("artifact load failed")
)

func playerNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
}

func invalidPosition(value string) error {
	return fmt.Errorf("%w: %q", ErrInvalidPosition, value)
}

func missingFeature(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingFeature, name)
}

// IsUserError reports whether err is a user-input-class error, as opposed to
// an infrastructure fault like an artifact load failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrInvalidPosition) ||
		errors.Is(err, ErrMissingFeature) ||
		errors.Is(err, ErrEmptyFeatureSet)
}
