package handlers

import (
	"errors"
	"net/http"

	"github.com/Cheertaboi/checkout-flows/internal/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnknownVisit):
		return http.StatusGone
	case errors.Is(err, service.ErrSubscriptionIDRequired):
		return http.StatusBadRequest
	case err != nil:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// noticeFor is the user-facing text for err. Backend details stay in logs.
func noticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrSubmissionInFlight):
		return "Your checkout is already being processed."
	case errors.Is(err, service.ErrUnknownVisit):
		return "This checkout page expired. Please try again."
	case errors.Is(err, service.ErrSubscriptionIDRequired):
		return "Choose a subscription to cancel."
	default:
		return "We could not reach the payment service. Please try again."
	}
}
