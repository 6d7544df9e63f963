// Package filters holds the display helpers registered with the HTML templates.
//
// Every helper maps one value (plus an optional argument) to something a
// template can print. None of them return errors: malformed, missing or
// mistyped input produces the helper's documented default so that a single
// bad field never aborts a page render.
package filters

import (
	"tracker/internal/clock"
	"tracker/internal/logging"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StartTimes exposes the two timestamps an order's work can start from.
type StartTimes interface {
	CreatedTime() clock.Timestamp
	StartedTime() clock.Timestamp
}

// OrderTimestamps exposes every lifecycle timestamp of an order. Unset fields
// are zero Timestamps.
type OrderTimestamps interface {
	StartTimes
	AssignedTime() clock.Timestamp
	CompletedTime() clock.Timestamp
	CancelledTime() clock.Timestamp
}

// Customer is the part of a customer record used for recency labels.
type Customer interface {
	RegistrationDate() clock.Timestamp
	TotalVisits() int
}

// PricedItem is anything sold with a known cost.
type PricedItem interface {
	Price() decimal.Decimal
	CostPrice() decimal.Decimal
}

// StoredFile is a handle on an uploaded file whose size may need I/O to read.
type StoredFile interface {
	Name() string
	Size() (int64, error)
}

// Typed is a collection member carrying a type label.
type Typed interface {
	ComponentType() string
}

// TypeSet reports whether any member has the given type label.
type TypeSet interface {
	ContainsType(label string) bool
}

// Getter is a keyed lookup that is not a Go map.
type Getter interface {
	Get(key string) (any, bool)
}

// Library binds the clock-dependent helpers to an injected clock.
// It holds no mutable state and is safe for concurrent renders.
type Library struct {
	clock clock.Clock
	log   zerolog.Logger
}

type Option func(*Library)

// WithLogger replaces the component logger used for diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Library) {
		l.log = logger
	}
}

// New creates a Library reading time from c. A nil clock means the system
// clock in time.Local.
func New(c clock.Clock, opts ...Option) *Library {
	if c == nil {
		c = clock.NewSystem(nil)
	}

	l := &Library{
		clock: c,
		log:   logging.GetLogger("filters"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the clock the library was built with
func (l *Library) Clock() clock.Clock {
	return l.clock
}
