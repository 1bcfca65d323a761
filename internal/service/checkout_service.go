package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/checkout-flows/internal/cache"
	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/repository"
)

// SessionBackend creates payment sessions (use interfaces to allow mocking)
type SessionBackend interface {
	CreateSession(ctx context.Context, endpointPath string, req models.SubmissionRequest) (string, error)
}

type Catalog interface {
	All() []models.Item
	Subscriptions() []models.Item
}

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirecting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Checkout is one visit of a session flow: its cart, the customer fields
// and where the submission stands.
type Checkout struct {
	ID       string
	Flow     models.FlowDescriptor
	Cart     models.Cart
	Customer *models.CustomerIntake

	mu          sync.Mutex
	state       State
	destination models.RedirectURI
	lastErr     error
}

func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Destination is set once the visit reached StateRedirecting.
func (c *Checkout) Destination() models.RedirectURI {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destination
}

func (c *Checkout) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Checkout) Total() decimal.Decimal {
	return c.Flow.DisplayTotal(c.Cart)
}

type CheckoutService struct {
	backend SessionBackend
	catalog Catalog
	policy  models.RedirectPolicy
	visits  *cache.VisitCache[*Checkout]
	log     *zap.Logger
}

func NewCheckoutService(backend SessionBackend, catalog Catalog, policy models.RedirectPolicy, visits *cache.VisitCache[*Checkout], log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{
		backend: backend,
		catalog: catalog,
		policy:  policy,
		visits:  visits,
		log:     log,
	}
}

// Start opens a new visit of a session flow.
func (s *CheckoutService) Start(flow models.FlowDescriptor) (*Checkout, error) {
	if flow.Kind != models.KindSession {
		return nil, fmt.Errorf("%w: %s", ErrWrongFlowKind, flow.Route)
	}

	items := s.catalog.All()
	if flow.Mode == models.ModeSubscription || flow.Mode == models.ModeTrial {
		items = s.catalog.Subscriptions()
	}
	cart, err := models.LoadCart(items, flow.Mode)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	co := &Checkout{
		ID:       uuid.NewString(),
		Flow:     flow,
		Cart:     cart,
		Customer: models.NewCustomerIntake(),
	}
	if s.visits.Set(co.ID, co) {
		s.log.Debug("visit store full, oldest visit dropped", zap.String("flow", flow.Route))
	}
	return co, nil
}

// Visit returns the open visit for id, provided it belongs to route.
func (s *CheckoutService) Visit(route, id string) (*Checkout, error) {
	co, ok := s.visits.Get(id)
	if !ok || co.Flow.Route != route {
		return nil, ErrUnknownVisit
	}
	return co, nil
}

func (s *CheckoutService) OpenVisits() int {
	return s.visits.Len()
}

// SweepVisits drops expired visits.
func (s *CheckoutService) SweepVisits() int {
	return s.visits.Sweep()
}

// CustomerEdit is a field change carried by a submit action.
type CustomerEdit func(*models.CustomerIntake)

func WithName(name string) CustomerEdit {
	return func(c *models.CustomerIntake) { c.SetName(name) }
}

func WithEmail(email string) CustomerEdit {
	return func(c *models.CustomerIntake) { c.SetEmail(email) }
}

// Submit applies edits and sends the visit's submission, returning the
// validated destination. A visit already in flight is rejected with
// ErrSubmissionInFlight and a visit already redirecting returns its
// destination without a new call; in both cases edits are discarded.
func (s *CheckoutService) Submit(ctx context.Context, co *Checkout, edits ...CustomerEdit) (models.RedirectURI, error) {
	co.mu.Lock()
	switch co.state {
	case StateSubmitting:
		co.mu.Unlock()
		return models.RedirectURI{}, ErrSubmissionInFlight
	case StateRedirecting:
		dest := co.destination
		co.mu.Unlock()
		return dest, nil
	}
	for _, edit := range edits {
		edit(co.Customer)
	}
	co.state = StateSubmitting
	co.lastErr = nil
	req := models.NewSubmissionRequest(co.Cart, co.Customer.Snapshot(), co.Flow)
	co.mu.Unlock()

	raw, err := s.backend.CreateSession(ctx, co.Flow.EndpointPath, req)
	if err != nil {
		return models.RedirectURI{}, s.fail(co, classify(co.Flow.Route, err))
	}

	dest, err := s.policy.Parse(raw)
	if err != nil {
		return models.RedirectURI{}, s.fail(co, &SubmissionError{Kind: FailureRedirect, Route: co.Flow.Route, Err: err})
	}

	co.mu.Lock()
	co.state = StateRedirecting
	co.destination = dest
	co.mu.Unlock()

	s.log.Info("checkout redirecting",
		zap.String("flow", co.Flow.Route),
		zap.String("visit", co.ID),
		zap.String("host", dest.Host()),
	)
	return dest, nil
}

func (s *CheckoutService) fail(co *Checkout, err *SubmissionError) error {
	co.mu.Lock()
	co.state = StateFailed
	co.lastErr = err
	co.mu.Unlock()

	s.log.Warn("checkout submission failed",
		zap.String("flow", co.Flow.Route),
		zap.String("visit", co.ID),
		zap.String("kind", string(err.Kind)),
		zap.Error(err.Err),
	)
	return err
}

func classify(route string, err error) *SubmissionError {
	var upstream *repository.UpstreamError
	if errors.As(err, &upstream) {
		return &SubmissionError{Kind: FailureStatus, Route: route, Status: upstream.Status, Err: err}
	}
	return &SubmissionError{Kind: FailureTransport, Route: route, Err: err}
}
