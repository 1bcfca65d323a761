package models

// SubmissionItem identifies a chosen item. Prices are resolved by the
// backend.
type SubmissionItem struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// SubmissionRequest is the body POSTed to a flow endpoint. Built fresh per
// submit.
type SubmissionRequest struct {
	Items         []SubmissionItem `json:"items"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	InvoiceNeeded bool             `json:"invoiceNeeded"`
	OrderID       *string          `json:"orderId,omitempty"`
}

func NewSubmissionRequest(cart Cart, customer CustomerInfo, flow FlowDescriptor) SubmissionRequest {
	items := make([]SubmissionItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, SubmissionItem{Name: it.Name, ID: it.ID})
	}

	req := SubmissionRequest{
		Items:         items,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		InvoiceNeeded: true,
	}
	if flow.RequiresOrderID {
		orderID := flow.OrderID
		req.OrderID = &orderID
	}
	return req
}

// AccountRequest is the body of the subscription and invoice lookups.
type AccountRequest struct {
	CustomerEmail  string `json:"customerEmail,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}
