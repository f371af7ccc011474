package record

import (
	"errors"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("access to record denied")
)
