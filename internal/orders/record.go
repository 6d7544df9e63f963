package orders

import (
	"tracker/internal/clock"

	"github.com/shopspring/decimal"
)

// OrderTableId represents a string type identifier for order table field names
type OrderTableId string

const (
	OrderTableOrderId OrderTableId = "OrderId"
	OrderTableStatus  OrderTableId = "Status"
)

// Record is the stored form of an order. Timestamps are kept as text so that
// values written without an offset stay naive.
type Record struct {
	ID            string            `dynamodbav:"OrderId" json:"id" yaml:"id"`
	Status        string            `dynamodbav:"Status" json:"status" yaml:"status"`
	Priority      string            `dynamodbav:"Priority,omitempty" json:"priority,omitempty" yaml:"priority,omitempty"`
	Description   string            `dynamodbav:"Description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt     string            `dynamodbav:"CreatedAt,omitempty" json:"created_at,omitempty" yaml:"created_at,omitempty"`
	AssignedAt    string            `dynamodbav:"AssignedAt,omitempty" json:"assigned_at,omitempty" yaml:"assigned_at,omitempty"`
	StartedAt     string            `dynamodbav:"StartedAt,omitempty" json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CompletedAt   string            `dynamodbav:"CompletedAt,omitempty" json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	CancelledAt   string            `dynamodbav:"CancelledAt,omitempty" json:"cancelled_at,omitempty" yaml:"cancelled_at,omitempty"`
	Customer      *CustomerRecord   `dynamodbav:"Customer,omitempty" json:"customer,omitempty" yaml:"customer,omitempty"`
	Components    []ComponentRecord `dynamodbav:"Components,omitempty" json:"components,omitempty" yaml:"components,omitempty"`
	AttachmentKey string            `dynamodbav:"AttachmentKey,omitempty" json:"attachment_key,omitempty" yaml:"attachment_key,omitempty"`
}

type CustomerRecord struct {
	ID               string `dynamodbav:"CustomerId" json:"id" yaml:"id"`
	Name             string `dynamodbav:"Name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	RegistrationDate string `dynamodbav:"RegistrationDate,omitempty" json:"registration_date,omitempty" yaml:"registration_date,omitempty"`
	TotalVisits      *int   `dynamodbav:"TotalVisits,omitempty" json:"total_visits,omitempty" yaml:"total_visits,omitempty"`
}

type ComponentRecord struct {
	Name      string  `dynamodbav:"Name" json:"name" yaml:"name"`
	Type      string  `dynamodbav:"Type" json:"type" yaml:"type"`
	Quantity  float64 `dynamodbav:"Quantity" json:"quantity" yaml:"quantity"`
	Price     float64 `dynamodbav:"Price" json:"price" yaml:"price"`
	CostPrice float64 `dynamodbav:"CostPrice" json:"cost_price" yaml:"cost_price"`
}

// Order converts the stored record into an Order
func (r Record) Order() (*Order, error) {
	order := &Order{
		ID:            r.ID,
		Status:        r.Status,
		Priority:      r.Priority,
		Description:   r.Description,
		AttachmentKey: r.AttachmentKey,
	}

	stamps := []struct {
		field string
		value string
		dest  *clock.Timestamp
	}{
		{"created_at", r.CreatedAt, &order.Created},
		{"assigned_at", r.AssignedAt, &order.Assigned},
		{"started_at", r.StartedAt, &order.Started},
		{"completed_at", r.CompletedAt, &order.Completed},
		{"cancelled_at", r.CancelledAt, &order.Cancelled},
	}
	for _, s := range stamps {
		ts, err := clock.ParseTimestamp(s.value)
		if err != nil {
			return nil, ErrorInvalidRecord(r.ID, s.field, err)
		}
		*s.dest = ts
	}

	if r.Customer != nil {
		customer, err := r.Customer.customer()
		if err != nil {
			return nil, ErrorInvalidRecord(r.ID, "customer", err)
		}
		order.Customer = customer
	}

	for _, c := range r.Components {
		order.Components = append(order.Components, Component{
			Name:      c.Name,
			Type:      c.Type,
			Quantity:  decimal.NewFromFloat(c.Quantity),
			SalePrice: decimal.NewFromFloat(c.Price),
			Cost:      decimal.NewFromFloat(c.CostPrice),
		})
	}

	return order, nil
}

func (r CustomerRecord) customer() (*Customer, error) {
	registered, err := clock.ParseTimestamp(r.RegistrationDate)
	if err != nil {
		return nil, err
	}

	visits := 0
	if r.TotalVisits != nil {
		visits = *r.TotalVisits
	}

	return &Customer{
		ID:         r.ID,
		Name:       r.Name,
		Registered: registered,
		Visits:     visits,
	}, nil
}
