package collector

import "errors"

// ConnectionError is the single failure kind of a live collection. Its
// message is the underlying driver or parse error text, unchanged.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is, or wraps, a *ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// Input errors. These reject a request before any collection happens.
var (
	ErrUnknownMode   = errors.New("unknown mode")
	ErrUnknownEngine = errors.New("unknown database engine")
)
