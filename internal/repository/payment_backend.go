package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Cheertaboi/checkout-flows/internal/models"
)

// maxBodyBytes caps how much of a backend answer is read.
const maxBodyBytes = 1 << 20

// UpstreamError is a non-2xx answer from the payment backend.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d body=%s", e.Status, e.Body)
}

// PaymentBackend talks to the remote payment backend at baseURL.
type PaymentBackend struct {
	baseURL string
	client  *http.Client
}

func NewPaymentBackend(baseURL string, client *http.Client) *PaymentBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &PaymentBackend{baseURL: baseURL, client: client}
}

// CreateSession posts a SubmissionRequest and returns the raw body text.
func (b *PaymentBackend) CreateSession(ctx context.Context, endpointPath string, req models.SubmissionRequest) (string, error) {
	body, err := b.post(ctx, endpointPath, req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (b *PaymentBackend) ListSubscriptions(ctx context.Context, path, email string) ([]models.Subscription, error) {
	body, err := b.post(ctx, path, models.AccountRequest{CustomerEmail: email})
	if err != nil {
		return nil, err
	}
	var subs []models.Subscription
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("decode subscriptions: %w", err)
	}
	return subs, nil
}

// CancelSubscription returns the backend's plain-text subscription status.
func (b *PaymentBackend) CancelSubscription(ctx context.Context, path, subscriptionID string) (string, error) {
	body, err := b.post(ctx, path, models.AccountRequest{SubscriptionID: subscriptionID})
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(body)), nil
}

func (b *PaymentBackend) ListInvoices(ctx context.Context, path, email string) ([]models.Invoice, error) {
	body, err := b.post(ctx, path, models.AccountRequest{CustomerEmail: email})
	if err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	if err := json.Unmarshal(body, &invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return invoices, nil
}

func (b *PaymentBackend) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
