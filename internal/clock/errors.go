package clock

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrUnknownTimeZone  = errors.New("unknown time zone")
)

func ErrorInvalidTimestamp(value string) error {
	return fmt.Errorf("%w: value=%q", ErrInvalidTimestamp, value)
}

func ErrorUnknownTimeZone(name string, cause error) error {
	return fmt.Errorf("%w: zone=%s cause=%v", ErrUnknownTimeZone, name, cause)
}
