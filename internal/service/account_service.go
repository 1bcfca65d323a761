package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Cheertaboi/checkout-flows/internal/models"
)

type AccountBackend interface {
	ListSubscriptions(ctx context.Context, path, email string) ([]models.Subscription, error)
	CancelSubscription(ctx context.Context, path, subscriptionID string) (string, error)
	ListInvoices(ctx context.Context, path, email string) ([]models.Invoice, error)
}

// AccountService backs the cancellation and invoice flows.
type AccountService struct {
	backend AccountBackend
	log     *zap.Logger
}

func NewAccountService(backend AccountBackend, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{backend: backend, log: log}
}

// Subscriptions lists the customer's subscriptions. An empty email lists
// nothing and makes no call.
func (s *AccountService) Subscriptions(ctx context.Context, flow models.FlowDescriptor, email string) ([]models.Subscription, error) {
	if flow.Kind != models.KindCancellation {
		return nil, fmt.Errorf("%w: %s", ErrWrongFlowKind, flow.Route)
	}
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	subs, err := s.backend.ListSubscriptions(ctx, flow.LookupPath, email)
	if err != nil {
		s.log.Warn("list subscriptions failed", zap.String("flow", flow.Route), zap.Error(err))
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Cancel cancels one subscription and returns its new status.
func (s *AccountService) Cancel(ctx context.Context, flow models.FlowDescriptor, subscriptionID string) (string, error) {
	if flow.Kind != models.KindCancellation {
		return "", fmt.Errorf("%w: %s", ErrWrongFlowKind, flow.Route)
	}
	if subscriptionID == "" {
		return "", ErrSubscriptionIDRequired
	}
	status, err := s.backend.CancelSubscription(ctx, flow.EndpointPath, subscriptionID)
	if err != nil {
		s.log.Warn("cancel subscription failed", zap.String("subscription", subscriptionID), zap.Error(err))
		return "", fmt.Errorf("cancel subscription: %w", err)
	}
	s.log.Info("subscription cancelled", zap.String("subscription", subscriptionID), zap.String("status", status))
	return status, nil
}

func (s *AccountService) Invoices(ctx context.Context, flow models.FlowDescriptor, email string) ([]models.Invoice, error) {
	if flow.Kind != models.KindInvoices {
		return nil, fmt.Errorf("%w: %s", ErrWrongFlowKind, flow.Route)
	}
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	invoices, err := s.backend.ListInvoices(ctx, flow.EndpointPath, email)
	if err != nil {
		s.log.Warn("list invoices failed", zap.String("flow", flow.Route), zap.Error(err))
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
