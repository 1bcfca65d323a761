package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/service"
)

type mockAccountBackend struct {
	listSubsFn func(ctx context.Context, path, email string) ([]models.Subscription, error)
	cancelFn   func(ctx context.Context, path, id string) (string, error)
	invoicesFn func(ctx context.Context, path, email string) ([]models.Invoice, error)
	calls      int
}

func (m *mockAccountBackend) ListSubscriptions(ctx context.Context, path, email string) ([]models.Subscription, error) {
	m.calls++
	return m.listSubsFn(ctx, path, email)
}

func (m *mockAccountBackend) CancelSubscription(ctx context.Context, path, id string) (string, error) {
	m.calls++
	return m.cancelFn(ctx, path, id)
}

func (m *mockAccountBackend) ListInvoices(ctx context.Context, path, email string) ([]models.Invoice, error) {
	m.calls++
	return m.invoicesFn(ctx, path, email)
}

func TestSubscriptions(t *testing.T) {
	var gotPath, gotEmail string
	backend := &mockAccountBackend{listSubsFn: func(_ context.Context, path, email string) ([]models.Subscription, error) {
		gotPath, gotEmail = path, email
		return []models.Subscription{{SubscriptionID: "sub_1"}}, nil
	}}
	svc := service.NewAccountService(backend, nil)

	subs, err := svc.Subscriptions(context.Background(), flow(t, "/cancel-subscription"), "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "/subscriptions/list", gotPath)
	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Len(t, subs, 1)
}

func TestSubscriptionsEmptyEmailSkipsBackend(t *testing.T) {
	backend := &mockAccountBackend{}
	svc := service.NewAccountService(backend, nil)

	subs, err := svc.Subscriptions(context.Background(), flow(t, "/cancel-subscription"), "  ")
	require.NoError(t, err)
	assert.Nil(t, subs)
	assert.Equal(t, 0, backend.calls)
}

func TestSubscriptionsWrongFlow(t *testing.T) {
	svc := service.NewAccountService(&mockAccountBackend{}, nil)

	_, err := svc.Subscriptions(context.Background(), flow(t, "/view-invoices"), "ada@example.com")
	assert.ErrorIs(t, err, service.ErrWrongFlowKind)
}

func TestCancel(t *testing.T) {
	var gotPath, gotID string
	backend := &mockAccountBackend{cancelFn: func(_ context.Context, path, id string) (string, error) {
		gotPath, gotID = path, id
		return "canceled", nil
	}}
	svc := service.NewAccountService(backend, nil)

	status, err := svc.Cancel(context.Background(), flow(t, "/cancel-subscription"), "sub_1")
	require.NoError(t, err)

	assert.Equal(t, "canceled", status)
	assert.Equal(t, "/subscriptions/cancel", gotPath)
	assert.Equal(t, "sub_1", gotID)
}

func TestCancelRequiresID(t *testing.T) {
	backend := &mockAccountBackend{}
	svc := service.NewAccountService(backend, nil)

	_, err := svc.Cancel(context.Background(), flow(t, "/cancel-subscription"), "")
	assert.ErrorIs(t, err, service.ErrSubscriptionIDRequired)
	assert.Equal(t, 0, backend.calls)
}

func TestCancelBackendError(t *testing.T) {
	boom := errors.New("boom")
	backend := &mockAccountBackend{cancelFn: func(context.Context, string, string) (string, error) {
		return "", boom
	}}
	svc := service.NewAccountService(backend, nil)

	_, err := svc.Cancel(context.Background(), flow(t, "/cancel-subscription"), "sub_1")
	assert.ErrorIs(t, err, boom)
}

func TestInvoices(t *testing.T) {
	var gotPath string
	backend := &mockAccountBackend{invoicesFn: func(_ context.Context, path, _ string) ([]models.Invoice, error) {
		gotPath = path
		return []models.Invoice{{Number: "INV-1"}}, nil
	}}
	svc := service.NewAccountService(backend, nil)

	invoices, err := svc.Invoices(context.Background(), flow(t, "/view-invoices"), "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "/invoices/list", gotPath)
	assert.Equal(t, []models.Invoice{{Number: "INV-1"}}, invoices)

	_, err = svc.Invoices(context.Background(), flow(t, "/cancel-subscription"), "ada@example.com")
	assert.ErrorIs(t, err, service.ErrWrongFlowKind)
}
