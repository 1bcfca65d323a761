package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/service"
)

type checkoutPage struct {
	page
	Action   string
	VisitID  string
	Items    []models.Item
	Total    decimal.Decimal
	Cadence  string
	Customer models.CustomerInfo
}

type CheckoutHandler struct {
	service *service.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(svc *service.CheckoutService, log *zap.Logger) *CheckoutHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutHandler{service: svc, log: log}
}

// Page handles GET {route}: every load opens a fresh visit.
func (h *CheckoutHandler) Page(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		co, err := h.service.Start(flow)
		if err != nil {
			h.log.Error("start checkout", zap.String("flow", flow.Route), zap.Error(err))
			http.Error(w, "internal_error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, "checkout", newCheckoutPage(co, ""))
	}
}

// Submit handles POST {route}/checkout. On success the browser is sent to
// the backend-provided destination with 303 See Other; otherwise the page
// is rendered again with the held field values and no redirect.
func (h *CheckoutHandler) Submit(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid_body", http.StatusBadRequest)
			return
		}

		co, err := h.service.Visit(flow.Route, r.PostForm.Get("visit"))
		if err != nil {
			h.restart(w, flow, err)
			return
		}

		var edits []service.CustomerEdit
		if v, ok := r.PostForm["name"]; ok {
			edits = append(edits, service.WithName(v[0]))
		}
		if v, ok := r.PostForm["email"]; ok {
			edits = append(edits, service.WithEmail(v[0]))
		}

		dest, err := h.service.Submit(r.Context(), co, edits...)
		if err != nil {
			writeHTML(w, statusFor(err), "checkout", newCheckoutPage(co, noticeFor(err)))
			return
		}
		http.Redirect(w, r, dest.String(), http.StatusSeeOther)
	}
}

// restart renders a fresh visit after the posted one could not be found.
func (h *CheckoutHandler) restart(w http.ResponseWriter, flow models.FlowDescriptor, cause error) {
	co, err := h.service.Start(flow)
	if err != nil {
		h.log.Error("start checkout", zap.String("flow", flow.Route), zap.Error(err))
		http.Error(w, "internal_error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, statusFor(cause), "checkout", newCheckoutPage(co, noticeFor(cause)))
}

func newCheckoutPage(co *service.Checkout, notice string) checkoutPage {
	return checkoutPage{
		page:     page{Title: co.Flow.Title, Notice: notice},
		Action:   co.Flow.Route + "/checkout",
		VisitID:  co.ID,
		Items:    co.Cart.Items,
		Total:    co.Total(),
		Cadence:  co.Cart.Mode.Cadence(),
		Customer: co.Customer.Snapshot(),
	}
}
