package adaboost

import "errors"

var (
	// ErrInvalidHandle is returned when a handle does not name a live object
	// of the expected kind, for example after its Context was disposed.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrInvalidParameter is returned when a parameter value is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNilAlgorithm is returned when a nil weak learner algorithm is set.
	ErrNilAlgorithm = errors.New("weak learner algorithm must not be nil")
	// ErrInvalidProblem is returned for training data that cannot be boosted.
	ErrInvalidProblem = errors.New("invalid problem")
	// ErrWeakLearner is returned when no weak learner beats random guessing.
	ErrWeakLearner = errors.New("weak learner is no better than chance")
	// ErrModelFormat is returned when a model cannot be written or read back
	// in the text model format.
	ErrModelFormat = errors.New("malformed model")
)

// IsInvalidHandle reports whether err was caused by a stale or foreign handle.
func IsInvalidHandle(err error) bool {
	return errors.Is(err, ErrInvalidHandle)
}
