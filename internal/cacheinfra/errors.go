package cacheinfra

import "errors"

var (
	// ErrBackend is matched by every BackendError.
	ErrBackend = errors.New("cache backend error")

	// ErrClosed is returned by adapters after Close.
	ErrClosed = errors.New("cache backend is closed")
)

// BackendError wraps a failure reported by a backend adapter.
type BackendError struct {
	Op  string
	Key string
	Err error
}

// NewBackendError wraps err for the given operation and key. It returns nil when err is nil.
func NewBackendError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Key: key, Err: err}
}

func (e *BackendError) Error() string {
	msg := "cache " + e.Op
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrBackend) classify any adapter failure.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
