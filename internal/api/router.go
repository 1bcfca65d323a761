package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/checkout-flows/internal/api/handlers"
	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/repository"
	"github.com/Cheertaboi/checkout-flows/internal/service"
)

// NewRouter builds the HTTP router. Every flow route comes from the
// descriptor table.
func NewRouter(flows *repository.FlowRepo, checkout *service.CheckoutService, account *service.AccountService, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	checkoutHandler := handlers.NewCheckoutHandler(checkout, log)
	accountHandler := handlers.NewAccountHandler(account)

	r.Get("/", handlers.Home(flows.All()))

	for _, flow := range flows.All() {
		switch flow.Kind {
		case models.KindSession:
			r.Get(flow.Route, checkoutHandler.Page(flow))
			r.Post(flow.Route+"/checkout", checkoutHandler.Submit(flow))
		case models.KindCancellation:
			r.Get(flow.Route, accountHandler.SubscriptionsPage(flow))
			r.Post(flow.Route+"/lookup", accountHandler.LookupSubscriptions(flow))
			r.Post(flow.Route+"/cancel", accountHandler.Cancel(flow))
		case models.KindInvoices:
			r.Get(flow.Route, accountHandler.InvoicesPage(flow))
			r.Post(flow.Route+"/lookup", accountHandler.LookupInvoices(flow))
		}
	}

	// landing pages for provider redirects
	r.Get("/success", handlers.Success)
	r.Get("/failure", handlers.Failure)

	// health
	r.Get("/health", handlers.Health(checkout.OpenVisits))

	return r
}
