package handlers

import (
	"net/http"

	"github.com/Cheertaboi/checkout-flows/internal/models"
)

type homePage struct {
	page
	Flows []models.FlowDescriptor
}

type outcomePage struct {
	page
	Message string
}

// Home handles GET /
func Home(flows []models.FlowDescriptor) http.HandlerFunc {
	data := homePage{page: page{Title: "Payment Flow Examples"}, Flows: flows}
	return func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, http.StatusOK, "home", data)
	}
}

// Success and Failure are landing pages reached by provider redirects.
// They read nothing from the request.
func Success(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, "outcome", outcomePage{
		page:    page{Title: "Success"},
		Message: "Your payment was completed.",
	})
}

func Failure(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, "outcome", outcomePage{
		page:    page{Title: "Failure"},
		Message: "Your payment was not completed.",
	})
}

type healthResponse struct {
	Status     string `json:"status"`
	OpenVisits int    `json:"open_visits"`
}

// Health handles GET /health
func Health(openVisits func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", OpenVisits: openVisits()})
	}
}
