package models

import "github.com/shopspring/decimal"

type FlowKind string

const (
	// KindSession flows submit the cart and follow the returned destination.
	// The backend must answer with a URI; any other body, such as a payment
	// intent client secret, fails the submission.
	KindSession      FlowKind = "session"
	KindCancellation FlowKind = "cancellation"
	KindInvoices     FlowKind = "invoices"
)

// FlowDescriptor is the static configuration bound to one route.
type FlowDescriptor struct {
	Route           string
	Title           string
	Kind            FlowKind
	EndpointPath    string
	LookupPath      string
	Mode            Mode
	RequiresOrderID bool
	OrderID         string
	// TotalOverride replaces the cart-derived total when set, e.g. a flat
	// plan price.
	TotalOverride *decimal.Decimal
}

func (d FlowDescriptor) DisplayTotal(c Cart) decimal.Decimal {
	if d.TotalOverride != nil {
		return *d.TotalOverride
	}
	return c.Total()
}
