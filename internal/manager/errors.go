package manager

import (
	"errors"
	"net/http"
)

// notReadyError signals a prediction attempted before the model finished loading.
type notReadyError struct{ state State }

func (e notReadyError) Error() string   { return "model not ready: " + string(e.state) }
func (e notReadyError) StatusCode() int { return http.StatusServiceUnavailable }

// IsNotReady reports whether err indicates the model is not loaded (return 503).
func IsNotReady(err error) bool {
	var e notReadyError
	return errors.As(err, &e)
}

// overflowError signals that an input element cannot be transformed within int64.
type overflowError struct{ err error }

func (e overflowError) Error() string   { return "value out of range: " + e.err.Error() }
func (e overflowError) Unwrap() error   { return e.err }
func (e overflowError) StatusCode() int { return http.StatusUnprocessableEntity }

// IsOverflow reports whether err indicates an out-of-range input (return 422).
func IsOverflow(err error) bool {
	var e overflowError
	return errors.As(err, &e)
}

// artifactNotFoundError is returned by Load when the artifact path does not exist.
type artifactNotFoundError struct{ path string }

func (e artifactNotFoundError) Error() string { return "artifact not found: " + e.path }

// IsArtifactNotFound reports whether err indicates a missing artifact file.
func IsArtifactNotFound(err error) bool {
	var e artifactNotFoundError
	return errors.As(err, &e)
}
