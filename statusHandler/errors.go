package statusHandler

import "errors"

// ErrNilRegisterer signals that a nil prometheus registerer has been provided
var ErrNilRegisterer = errors.New("nil prometheus registerer")
