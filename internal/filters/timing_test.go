package filters

import (
	"bytes"
	"testing"
	"time"

	"tracker/internal/clock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOrder struct {
	created, assigned, started, completed, cancelled clock.Timestamp
}

func (o *testOrder) CreatedTime() clock.Timestamp   { return o.created }
func (o *testOrder) AssignedTime() clock.Timestamp  { return o.assigned }
func (o *testOrder) StartedTime() clock.Timestamp   { return o.started }
func (o *testOrder) CompletedTime() clock.Timestamp { return o.completed }
func (o *testOrder) CancelledTime() clock.Timestamp { return o.cancelled }

type brokenOrder struct{ testOrder }

func (brokenOrder) CompletedTime() clock.Timestamp { panic("lazy load failed") }

type testCustomer struct {
	registered clock.Timestamp
	visits     int
}

func (c *testCustomer) RegistrationDate() clock.Timestamp { return c.registered }
func (c *testCustomer) TotalVisits() int                  { return c.visits }

// 2025-01-15 09:30 in Chicago (15:30 UTC).
var testNow = time.Date(2025, 1, 15, 15, 30, 0, 0, time.UTC)

func newTestLibrary(t *testing.T) (*Library, *time.Location) {
	t.Helper()
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return New(clock.NewFixed(testNow, chicago), WithLogger(zerolog.Nop())), chicago
}

func TestDaysSince(t *testing.T) {
	lib, chicago := newTestLibrary(t)

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"three days ago", testNow.AddDate(0, 0, -3), 3},
		{"less than a day", testNow.Add(-23 * time.Hour), 0},
		{"future is negative", testNow.Add(time.Hour), -1},
		{"pointer", func() *time.Time { t := testNow.AddDate(0, 0, -10); return &t }(), 10},
		// naive wall clock 09:30 two days back is read in Chicago
		{"naive timestamp", clock.NaiveAt(time.Date(2025, 1, 13, 9, 30, 0, 0, time.UTC)), 2},
		{"naive string", "2025-01-13 09:31:00", 1},
		{"aware in another zone", time.Date(2025, 1, 6, 9, 30, 0, 0, chicago), 9},
		{"nil", nil, 0},
		{"zero time", time.Time{}, 0},
		{"garbage", "last week", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.DaysSince(tt.value))
		})
	}
}

func TestCustomerStatus(t *testing.T) {
	lib, chicago := newTestLibrary(t)

	// 02:00 UTC on the 15th is still the 14th in Chicago
	yesterdayLate := clock.Aware(time.Date(2025, 1, 15, 2, 0, 0, 0, time.UTC))
	todayMorning := clock.Aware(time.Date(2025, 1, 15, 7, 0, 0, 0, chicago))

	tests := []struct {
		name     string
		customer Customer
		want     string
	}{
		{"registered today", &testCustomer{registered: todayMorning, visits: 12}, "new"},
		{"registered today naive", &testCustomer{registered: clock.NaiveAt(time.Date(2025, 1, 15, 0, 5, 0, 0, time.UTC)), visits: 4}, "new"},
		{"utc date differs from local date", &testCustomer{registered: yesterdayLate, visits: 4}, "returning"},
		{"single visit", &testCustomer{registered: clock.Aware(testNow.AddDate(-1, 0, 0)), visits: 1}, "new"},
		{"no visits recorded", &testCustomer{}, "new"},
		{"regular", &testCustomer{registered: clock.Aware(testNow.AddDate(-1, 0, 0)), visits: 2}, "returning"},
		{"nil", nil, ""},
		{"typed nil", (*testCustomer)(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.CustomerStatus(tt.customer))
		})
	}
}

func TestOrderLastUpdate(t *testing.T) {
	lib, chicago := newTestLibrary(t)

	created := clock.Aware(testNow.Add(-5 * time.Hour))
	assigned := clock.Aware(testNow.Add(-4 * time.Hour))
	started := clock.Aware(testNow.Add(-3 * time.Hour))
	cancelled := clock.Aware(testNow.Add(-2 * time.Hour))
	completed := clock.Aware(testNow.Add(-1 * time.Hour))

	t.Run("completed wins when everything is set", func(t *testing.T) {
		order := &testOrder{created, assigned, started, completed, cancelled}
		assert.True(t, lib.OrderLastUpdate(order).Equal(completed.Time))
	})

	t.Run("priority order", func(t *testing.T) {
		assert.True(t, lib.OrderLastUpdate(&testOrder{created: created, assigned: assigned, started: started, cancelled: cancelled}).Equal(cancelled.Time))
		assert.True(t, lib.OrderLastUpdate(&testOrder{created: created, assigned: assigned, started: started}).Equal(started.Time))
		assert.True(t, lib.OrderLastUpdate(&testOrder{created: created, assigned: assigned}).Equal(assigned.Time))
		assert.True(t, lib.OrderLastUpdate(&testOrder{created: created}).Equal(created.Time))
	})

	t.Run("naive result becomes aware", func(t *testing.T) {
		naive := clock.NaiveAt(time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC))
		got := lib.OrderLastUpdate(&testOrder{completed: naive, created: created})
		assert.Equal(t, chicago, got.Location())
		assert.Equal(t, 8, got.Hour())
		assert.True(t, got.Equal(time.Date(2025, 1, 14, 14, 0, 0, 0, time.UTC)))
	})

	t.Run("no timestamps reports now", func(t *testing.T) {
		assert.True(t, lib.OrderLastUpdate(&testOrder{}).Equal(testNow))
	})

	t.Run("nil order", func(t *testing.T) {
		assert.True(t, lib.OrderLastUpdate(nil).IsZero())
		assert.True(t, lib.OrderLastUpdate((*testOrder)(nil)).IsZero())
	})

	t.Run("failure is logged and falls back to now", func(t *testing.T) {
		var buf bytes.Buffer
		logged := New(clock.NewFixed(testNow, chicago), WithLogger(zerolog.New(&buf)))

		got := logged.OrderLastUpdate(&brokenOrder{})
		assert.True(t, got.Equal(testNow))
		assert.Contains(t, buf.String(), "Error in order last update")
		assert.Contains(t, buf.String(), "lazy load failed")
	})
}

func TestElapsedMinutes(t *testing.T) {
	lib, _ := newTestLibrary(t)

	tests := []struct {
		name  string
		order StartTimes
		want  int
	}{
		{"from started", &testOrder{started: clock.Aware(testNow.Add(-90 * time.Minute)), created: clock.Aware(testNow.Add(-5 * time.Hour))}, 90},
		{"falls back to created", &testOrder{created: clock.Aware(testNow.Add(-45*time.Minute - 59*time.Second))}, 45},
		{"naive start read locally", &testOrder{started: clock.NaiveAt(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))}, 30},
		{"future start clamps to zero", &testOrder{started: clock.Aware(testNow.Add(10 * time.Minute))}, 0},
		{"no start", &testOrder{}, 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.ElapsedMinutes(tt.order))
		})
	}
}

func TestActualTimeMinutes(t *testing.T) {
	lib, _ := newTestLibrary(t)

	start := clock.Aware(testNow.Add(-3 * time.Hour))

	tests := []struct {
		name  string
		order OrderTimestamps
		want  int
	}{
		{"completed order", &testOrder{started: start, completed: clock.Aware(testNow.Add(-1 * time.Hour))}, 120},
		{"open order runs to now", &testOrder{started: start}, 180},
		{"created used without start", &testOrder{created: clock.Aware(testNow.Add(-10 * time.Minute))}, 10},
		{"naive completion", &testOrder{started: start, completed: clock.NaiveAt(time.Date(2025, 1, 15, 7, 0, 0, 0, time.UTC))}, 30},
		{"completion before start clamps", &testOrder{started: start, completed: clock.Aware(testNow.Add(-4 * time.Hour))}, 0},
		{"no start", &testOrder{completed: clock.Aware(testNow)}, 0},
		{"nil", nil, 0},
		{"panicking record", &brokenOrder{testOrder{started: start}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.ActualTimeMinutes(tt.order))
		})
	}
}

func TestDurationsNeverNegative(t *testing.T) {
	lib, _ := newTestLibrary(t)

	for offset := -48 * time.Hour; offset <= 48*time.Hour; offset += 7 * time.Hour {
		ts := clock.Aware(testNow.Add(offset))
		order := &testOrder{started: ts, completed: clock.Aware(testNow.Add(-offset))}

		assert.GreaterOrEqual(t, lib.ElapsedMinutes(order), 0)
		assert.GreaterOrEqual(t, lib.ActualTimeMinutes(order), 0)
	}
}
