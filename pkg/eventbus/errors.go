package eventbus

import "errors"

// ErrBusClosed indicates a publish attempt on a closed bus.
var ErrBusClosed = errors.New("eventbus.closed")
