package models

// Subscription is one item row of a customer subscription as reported by
// the backend. Dates are preformatted dd/MM/yyyy strings.
type Subscription struct {
	AppProductID    string `json:"appProductId"`
	SubscriptionID  string `json:"subscriptionId"`
	SubscribedOn    string `json:"subscribedOn"`
	NextPaymentDate string `json:"nextPaymentDate"`
	Price           string `json:"price"`
	TrialEndsOn     string `json:"trialEndsOn,omitempty"`
}

type Invoice struct {
	Number string `json:"number"`
	Amount string `json:"amount"`
	URL    string `json:"url"`
}
