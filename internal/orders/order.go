package orders

import (
	"strings"

	"tracker/internal/clock"

	"github.com/shopspring/decimal"
)

const (
	StatusCreated    = "created"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusOverdue    = "overdue"
	StatusPending    = "pending"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	ComponentService = "service"
	ComponentPart    = "part"
	ComponentAddOn   = "addon"
)

// Order is a work order as shown on the shop dashboards
type Order struct {
	ID            string
	Status        string
	Priority      string
	Description   string
	Created       clock.Timestamp
	Assigned      clock.Timestamp
	Started       clock.Timestamp
	Completed     clock.Timestamp
	Cancelled     clock.Timestamp
	Customer      *Customer
	Components    Components
	AttachmentKey string
}

func (o *Order) CreatedTime() clock.Timestamp   { return o.Created }
func (o *Order) AssignedTime() clock.Timestamp  { return o.Assigned }
func (o *Order) StartedTime() clock.Timestamp   { return o.Started }
func (o *Order) CompletedTime() clock.Timestamp { return o.Completed }
func (o *Order) CancelledTime() clock.Timestamp { return o.Cancelled }

// IsOpen reports whether work on the order can still happen
func (o *Order) IsOpen() bool {
	switch strings.ToLower(o.Status) {
	case StatusCompleted, StatusCancelled:
		return false
	}
	return true
}

// Customer is the person an order is for
type Customer struct {
	ID         string
	Name       string
	Registered clock.Timestamp
	Visits     int
}

func (c *Customer) RegistrationDate() clock.Timestamp { return c.Registered }
func (c *Customer) TotalVisits() int                  { return c.Visits }

// Component is a service, part or add-on line on an order
type Component struct {
	Name      string
	Type      string
	Quantity  decimal.Decimal
	SalePrice decimal.Decimal
	Cost      decimal.Decimal
}

func (c Component) Price() decimal.Decimal     { return c.SalePrice }
func (c Component) CostPrice() decimal.Decimal { return c.Cost }
func (c Component) ComponentType() string      { return c.Type }

// Total is the sale price times quantity
func (c Component) Total() decimal.Decimal {
	return c.SalePrice.Mul(c.Quantity)
}

type Components []Component

// ContainsType reports whether any component has exactly the given type
func (cs Components) ContainsType(label string) bool {
	for _, c := range cs {
		if c.Type == label {
			return true
		}
	}
	return false
}

// Total sums every component total
func (cs Components) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.Total())
	}
	return total
}
