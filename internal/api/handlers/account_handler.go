package handlers

import (
	"net/http"

	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/service"
)

type subscriptionsPage struct {
	page
	LookupAction  string
	CancelAction  string
	Email         string
	Looked        bool
	Subscriptions []models.Subscription
	Status        string
}

type invoicesPage struct {
	page
	LookupAction string
	Email        string
	Looked       bool
	Invoices     []models.Invoice
}

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// SubscriptionsPage handles GET /cancel-subscription
func (h *AccountHandler) SubscriptionsPage(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, http.StatusOK, "subscriptions", newSubscriptionsPage(flow))
	}
}

// LookupSubscriptions handles POST /cancel-subscription/lookup
func (h *AccountHandler) LookupSubscriptions(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid_body", http.StatusBadRequest)
			return
		}

		p := newSubscriptionsPage(flow)
		p.Email = r.PostForm.Get("email")
		subs, err := h.service.Subscriptions(r.Context(), flow, p.Email)
		if err != nil {
			p.Notice = noticeFor(err)
			writeHTML(w, statusFor(err), "subscriptions", p)
			return
		}
		p.Looked = true
		p.Subscriptions = subs
		writeHTML(w, http.StatusOK, "subscriptions", p)
	}
}

// Cancel handles POST /cancel-subscription/cancel and lists the remaining
// subscriptions for the same email.
func (h *AccountHandler) Cancel(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid_body", http.StatusBadRequest)
			return
		}

		p := newSubscriptionsPage(flow)
		p.Email = r.PostForm.Get("email")
		status, err := h.service.Cancel(r.Context(), flow, r.PostForm.Get("subscriptionId"))
		if err != nil {
			p.Notice = noticeFor(err)
			writeHTML(w, statusFor(err), "subscriptions", p)
			return
		}
		p.Status = status

		if subs, err := h.service.Subscriptions(r.Context(), flow, p.Email); err == nil && p.Email != "" {
			p.Looked = true
			p.Subscriptions = subs
		}
		writeHTML(w, http.StatusOK, "subscriptions", p)
	}
}

// InvoicesPage handles GET /view-invoices
func (h *AccountHandler) InvoicesPage(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, http.StatusOK, "invoices", newInvoicesPage(flow))
	}
}

// LookupInvoices handles POST /view-invoices/lookup
func (h *AccountHandler) LookupInvoices(flow models.FlowDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid_body", http.StatusBadRequest)
			return
		}

		p := newInvoicesPage(flow)
		p.Email = r.PostForm.Get("email")
		invoices, err := h.service.Invoices(r.Context(), flow, p.Email)
		if err != nil {
			p.Notice = noticeFor(err)
			writeHTML(w, statusFor(err), "invoices", p)
			return
		}
		p.Looked = true
		p.Invoices = invoices
		writeHTML(w, http.StatusOK, "invoices", p)
	}
}

func newSubscriptionsPage(flow models.FlowDescriptor) subscriptionsPage {
	return subscriptionsPage{
		page:         page{Title: flow.Title},
		LookupAction: flow.Route + "/lookup",
		CancelAction: flow.Route + "/cancel",
	}
}

func newInvoicesPage(flow models.FlowDescriptor) invoicesPage {
	return invoicesPage{
		page:         page{Title: flow.Title},
		LookupAction: flow.Route + "/lookup",
	}
}
