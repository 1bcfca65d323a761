package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/checkout-flows/internal/models"
)

// FlowRepo is the route-keyed table of flow descriptors.
type FlowRepo struct {
	flows   []models.FlowDescriptor
	byRoute map[string]int
}

func NewFlowRepo() *FlowRepo {
	planPrice := decimal.RequireFromString("4.99")

	return newFlowRepo([]models.FlowDescriptor{
		{
			Route:           "/hosted-checkout",
			Title:           "Hosted Checkout Example",
			Kind:            models.KindSession,
			EndpointPath:    "/checkout/hosted",
			Mode:            models.ModeCheckout,
			RequiresOrderID: true,
			OrderID:         "1754041736853237761",
		},
		// answered with a destination URI like hosted checkout; a bare
		// client secret is not followed
		{
			Route:        "/integrated-checkout",
			Title:        "Integrated Checkout Example",
			Kind:         models.KindSession,
			EndpointPath: "/checkout/integrated",
			Mode:         models.ModeCheckout,
		},
		{
			Route:         "/new-subscription",
			Title:         "New Subscription Example",
			Kind:          models.KindSession,
			EndpointPath:  "/subscriptions/new",
			Mode:          models.ModeSubscription,
			TotalOverride: &planPrice,
		},
		{
			Route:         "/subscription-with-trial",
			Title:         "Subscription With Trial Example",
			Kind:          models.KindSession,
			EndpointPath:  "/subscriptions/trial",
			Mode:          models.ModeTrial,
			TotalOverride: &planPrice,
		},
		{
			Route:        "/cancel-subscription",
			Title:        "Cancel Subscription Example",
			Kind:         models.KindCancellation,
			EndpointPath: "/subscriptions/cancel",
			LookupPath:   "/subscriptions/list",
			Mode:         models.ModeSubscription,
		},
		{
			Route:        "/view-invoices",
			Title:        "View Invoices",
			Kind:         models.KindInvoices,
			EndpointPath: "/invoices/list",
			Mode:         models.ModeCheckout,
		},
	})
}

func newFlowRepo(flows []models.FlowDescriptor) *FlowRepo {
	r := &FlowRepo{flows: flows, byRoute: make(map[string]int, len(flows))}
	for i, f := range flows {
		r.byRoute[f.Route] = i
	}
	return r
}

func (r *FlowRepo) Lookup(route string) (models.FlowDescriptor, bool) {
	i, ok := r.byRoute[route]
	if !ok {
		return models.FlowDescriptor{}, false
	}
	return r.flows[i], true
}

// All returns every descriptor in table order.
func (r *FlowRepo) All() []models.FlowDescriptor {
	out := make([]models.FlowDescriptor, len(r.flows))
	copy(out, r.flows)
	return out
}
