package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/checkout-flows/internal/api"
	"github.com/Cheertaboi/checkout-flows/internal/cache"
	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/repository"
	"github.com/Cheertaboi/checkout-flows/internal/service"
)

// --- Fake payment backend ---

type fakeBackend struct {
	mu     sync.Mutex
	calls  []string
	bodies []string
	reply  func(path string) (int, string)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	reply := f.reply
	f.mu.Unlock()

	status, text := reply(r.URL.Path)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) lastBody() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[len(f.bodies)-1]
}

// --- Helpers ---

var visitRe = regexp.MustCompile(`name="visit" value="([^"]+)"`)

func setup(t *testing.T, reply func(path string) (int, string)) (http.Handler, *fakeBackend) {
	t.Helper()
	fake := &fakeBackend{reply: reply}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	visits, err := cache.NewVisitCache[*service.Checkout](time.Minute, 100)
	require.NoError(t, err)
	backend := repository.NewPaymentBackend(srv.URL, srv.Client())
	checkout := service.NewCheckoutService(
		backend,
		repository.NewCatalogRepo(),
		models.NewRedirectPolicy([]string{"pay.example"}),
		visits,
		nil,
	)
	account := service.NewAccountService(backend, nil)
	return api.NewRouter(repository.NewFlowRepo(), checkout, account, nil), fake
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func openVisit(t *testing.T, h http.Handler, route string) string {
	t.Helper()
	w := get(h, route)
	require.Equal(t, http.StatusOK, w.Code)
	m := visitRe.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "visit id not rendered")
	return m[1]
}

func ok(body string) func(string) (int, string) {
	return func(string) (int, string) { return http.StatusOK, body }
}

// --- Tests ---

func TestHostedCheckoutPage(t *testing.T) {
	h, fake := setup(t, ok(""))

	w := get(h, "/hosted-checkout")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hosted Checkout Example")
	assert.Contains(t, body, "Puma Shoes")
	assert.Contains(t, body, "Nike Sliders")
	assert.Contains(t, body, "Total: $30.00")
	assert.Regexp(t, visitRe, body)
	assert.Equal(t, 0, fake.callCount())
}

func TestSubscriptionPageShowsPlanPrice(t *testing.T) {
	h, _ := setup(t, ok(""))

	w := get(h, "/new-subscription")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total: $4.99 / month")
}

func TestCheckoutRedirectsToBackendDestination(t *testing.T) {
	h, fake := setup(t, ok("https://pay.example/session/abc"))
	visit := openVisit(t, h, "/hosted-checkout")

	w := postForm(h, "/hosted-checkout/checkout", url.Values{
		"visit": {visit},
		"name":  {"Ada Lovelace"},
		"email": {"ada@example.com"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://pay.example/session/abc", w.Header().Get("Location"))

	require.Equal(t, 1, fake.callCount())
	assert.Equal(t, "/checkout/hosted", fake.calls[0])
	sent := fake.lastBody()
	assert.Contains(t, sent, `"customerName":"Ada Lovelace","customerEmail":"ada@example.com"`)
	assert.Contains(t, sent, `"orderId":"1754041736853237761"`)
	assert.NotContains(t, sent, "price")
	assert.NotContains(t, sent, "quantity")
}

func TestCheckoutBackendFailureDoesNotRedirect(t *testing.T) {
	h, _ := setup(t, func(string) (int, string) { return http.StatusInternalServerError, "boom" })
	visit := openVisit(t, h, "/hosted-checkout")

	w := postForm(h, "/hosted-checkout/checkout", url.Values{
		"visit": {visit},
		"name":  {"Ada Lovelace"},
		"email": {"ada@example.com"},
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	body := w.Body.String()
	assert.Contains(t, body, "could not reach the payment service")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, `value="`+visit+`"`)
	assert.NotContains(t, body, "boom")
}

func TestCheckoutUntrustedDestinationDoesNotRedirect(t *testing.T) {
	h, _ := setup(t, ok("https://evil.example/phish"))
	visit := openVisit(t, h, "/new-subscription")

	w := postForm(h, "/new-subscription/checkout", url.Values{"visit": {visit}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestCheckoutUnknownVisitStartsOver(t *testing.T) {
	h, fake := setup(t, ok("https://pay.example/s"))

	w := postForm(h, "/hosted-checkout/checkout", url.Values{"visit": {"stale"}, "name": {"Ada"}})

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Regexp(t, visitRe, w.Body.String())
	assert.NotContains(t, w.Body.String(), `value="stale"`)
	assert.Equal(t, 0, fake.callCount())
}

func TestCheckoutVisitBoundToRoute(t *testing.T) {
	h, fake := setup(t, ok("https://pay.example/s"))
	visit := openVisit(t, h, "/hosted-checkout")

	w := postForm(h, "/subscription-with-trial/checkout", url.Values{"visit": {visit}})

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, 0, fake.callCount())
}

func TestOutcomePagesMakeNoBackendCall(t *testing.T) {
	h, fake := setup(t, ok(""))

	for path, title := range map[string]string{"/success": "Success", "/failure": "Failure"} {
		w := get(h, path+"?session_id=cs_test_123")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "<h1>"+title+"</h1>")
		assert.NotContains(t, w.Body.String(), "cs_test_123")
	}
	assert.Equal(t, 0, fake.callCount())
}

func TestHomeListsFlows(t *testing.T) {
	h, _ := setup(t, ok(""))

	w := get(h, "/")

	require.Equal(t, http.StatusOK, w.Code)
	for _, route := range []string{"/hosted-checkout", "/integrated-checkout", "/new-subscription", "/cancel-subscription", "/subscription-with-trial", "/view-invoices"} {
		assert.Contains(t, w.Body.String(), `href="`+route+`"`)
	}
}

func TestHealth(t *testing.T) {
	h, _ := setup(t, ok(""))
	openVisit(t, h, "/hosted-checkout")

	w := get(h, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(1), resp["open_visits"])
}

func TestCancelSubscriptionFlow(t *testing.T) {
	h, fake := setup(t, func(path string) (int, string) {
		switch path {
		case "/subscriptions/list":
			return http.StatusOK, `[{"appProductId":"shoe","subscriptionId":"sub_1","subscribedOn":"01/02/2024","nextPaymentDate":"01/03/2024","price":"499"}]`
		case "/subscriptions/cancel":
			return http.StatusOK, "canceled"
		}
		return http.StatusNotFound, ""
	})

	w := get(h, "/cancel-subscription")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, fake.callCount())

	w = postForm(h, "/cancel-subscription/lookup", url.Values{"email": {"ada@example.com"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="sub_1"`)
	assert.JSONEq(t, `{"customerEmail":"ada@example.com"}`, fake.lastBody())

	w = postForm(h, "/cancel-subscription/cancel", url.Values{"email": {"ada@example.com"}, "subscriptionId": {"sub_1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Subscription status: canceled")
	assert.Equal(t, []string{"/subscriptions/list", "/subscriptions/cancel", "/subscriptions/list"}, fake.calls)
}

func TestCancelSubscriptionMissingID(t *testing.T) {
	h, fake := setup(t, ok("canceled"))

	w := postForm(h, "/cancel-subscription/cancel", url.Values{"email": {"ada@example.com"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, fake.callCount())
}

func TestViewInvoicesFlow(t *testing.T) {
	h, _ := setup(t, ok(`[{"number":"INV-0001","amount":"30.0","url":"https://files.example/inv.pdf"}]`))

	w := postForm(h, "/view-invoices/lookup", url.Values{"email": {"ada@example.com"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-0001")
	assert.Contains(t, w.Body.String(), `href="https://files.example/inv.pdf"`)
}

func TestViewInvoicesBackendDown(t *testing.T) {
	h, _ := setup(t, func(string) (int, string) { return http.StatusServiceUnavailable, "" })

	w := postForm(h, "/view-invoices/lookup", url.Values{"email": {"ada@example.com"}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "could not reach the payment service")
}
