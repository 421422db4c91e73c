package dataseries

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNilBar          = errors.New("bar cannot be nil")
	ErrBarOutOfOrder   = errors.New("bar timestamp is earlier than the last bar")
)
