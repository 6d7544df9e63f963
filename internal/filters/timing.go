package filters

import (
	"math"
	"time"

	"tracker/internal/clock"
)

const (
	CustomerNew       = "new"
	CustomerReturning = "returning"
)

// DaysSince returns the number of full 24 hour periods elapsed since value,
// floored, so a future value gives a negative count. Naive timestamps are read
// in the clock's location. Missing or unreadable values yield 0.
func (l *Library) DaysSince(value any) int {
	ts, ok := clock.From(value)
	if !ok {
		return 0
	}

	delta := l.clock.Now().Sub(ts.Resolve(l.clock.Location()))
	return int(math.Floor(delta.Hours() / 24))
}

// CustomerStatus labels a customer "new" when they registered today (in the
// clock's location) or have at most one visit, otherwise "returning".
func (l *Library) CustomerStatus(c Customer) (status string) {
	defer func() {
		if recover() != nil {
			status = ""
		}
	}()

	if isNil(c) {
		return ""
	}

	loc := l.clock.Location()
	if reg := c.RegistrationDate(); !reg.IsZero() {
		if sameDay(reg.Resolve(loc).In(loc), l.clock.Now().In(loc)) {
			return CustomerNew
		}
	}

	if c.TotalVisits() <= 1 {
		return CustomerNew
	}
	return CustomerReturning
}

// OrderLastUpdate returns the most significant timestamp set on the order, in
// the order completed, cancelled, started, assigned, created. Naive values are
// made aware in the clock's location. An order with no timestamps reports now.
// A nil order yields the zero time.
func (l *Library) OrderLastUpdate(order OrderTimestamps) (last time.Time) {
	if isNil(order) {
		return time.Time{}
	}

	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("Error in order last update")
			last = l.clock.Now()
		}
	}()

	fields := []func() clock.Timestamp{
		order.CompletedTime,
		order.CancelledTime,
		order.StartedTime,
		order.AssignedTime,
		order.CreatedTime,
	}
	for _, field := range fields {
		if ts := field(); !ts.IsZero() {
			return ts.Resolve(l.clock.Location())
		}
	}

	return l.clock.Now()
}

// ElapsedMinutes counts whole minutes from the order's start (started, else
// created) until now. It never goes below zero and is 0 without a start.
func (l *Library) ElapsedMinutes(order StartTimes) (minutes int) {
	defer func() {
		if recover() != nil {
			minutes = 0
		}
	}()

	start, ok := l.startOf(order)
	if !ok {
		return 0
	}
	return wholeMinutes(l.clock.Now().Sub(start))
}

// ActualTimeMinutes counts whole minutes spent on an order: from its start
// (started, else created) until completion, or until now while still open.
func (l *Library) ActualTimeMinutes(order OrderTimestamps) (minutes int) {
	defer func() {
		if recover() != nil {
			minutes = 0
		}
	}()

	start, ok := l.startOf(order)
	if !ok {
		return 0
	}

	end := l.clock.Now()
	if completed := order.CompletedTime(); !completed.IsZero() {
		end = completed.Resolve(l.clock.Location())
	}
	return wholeMinutes(end.Sub(start))
}

func (l *Library) startOf(order StartTimes) (time.Time, bool) {
	if isNil(order) {
		return time.Time{}, false
	}

	start := order.StartedTime()
	if start.IsZero() {
		start = order.CreatedTime()
	}
	if start.IsZero() {
		return time.Time{}, false
	}
	return start.Resolve(l.clock.Location()), true
}

func wholeMinutes(d time.Duration) int {
	m := math.Floor(d.Minutes())
	if m < 0 {
		return 0
	}
	return int(m)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
