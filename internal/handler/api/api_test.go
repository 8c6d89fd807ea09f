package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tbraaten/idun/internal/billing"
	"github.com/tbraaten/idun/internal/cookie"
	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/booking"
	"github.com/tbraaten/idun/internal/repository/cart"
	"github.com/tbraaten/idun/internal/repository/product"
	"github.com/tbraaten/idun/internal/service"
)

// testEnv wires the handlers against in-memory repositories and routes
// them the same way the server does.
type testEnv struct {
	products *product.MemoryRepo
	carts    *cart.MemoryRepo
	bookings *booking.MemoryRepo
	provider *billing.MockProvider
	mux      *http.ServeMux

	coffee *domain.Product
	mug    *domain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := product.NewMemory()
	coffee, err := products.Create(context.Background(), product.CreateProductInput{
		Name:       "Single Origin Coffee",
		PriceCents: 1850,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	mug, err := products.Create(context.Background(), product.CreateProductInput{
		Name:       "Ceramic Mug",
		PriceCents: 1200,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	carts := cart.NewMemory(products)
	bookings := booking.NewMemory()
	provider := billing.NewMockProvider()
	cookies := cookie.NewConfig(false)

	cartHandler := NewCartHandler(service.NewCartService(carts, products), cookies)
	productHandler := NewProductHandler(service.NewProductService(products))
	checkoutHandler := NewCheckoutHandler(service.NewCheckoutService(bookings, carts, provider, "usd"), cookies)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.Get)
	mux.HandleFunc("GET /cart", cartHandler.View)
	mux.HandleFunc("POST /cart/items", cartHandler.AddItem)
	mux.HandleFunc("PATCH /cart/items/{id}", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /cart/items/{id}", cartHandler.RemoveItem)
	mux.HandleFunc("DELETE /cart", cartHandler.Empty)
	mux.HandleFunc("POST /checkout/payment-intent", checkoutHandler.CreatePaymentIntent)
	mux.HandleFunc("POST /checkout/bookings", checkoutHandler.CreateBooking)

	return &testEnv{
		products: products,
		carts:    carts,
		bookings: bookings,
		provider: provider,
		mux:      mux,
		coffee:   coffee,
		mug:      mug,
	}
}

// do performs a request against the test mux. A non-empty cartID is sent
// as the cart cookie.
func (e *testEnv) do(t *testing.T, method, path, body, cartID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cartID != "" {
		req.AddCookie(&http.Cookie{Name: cookie.CartCookieName, Value: cartID})
	}

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// cartCookie extracts the cart cookie set on a response, if any.
func cartCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.CartCookieName {
			return c
		}
	}
	return nil
}

// startCart performs an initial GET /cart and returns the new cart ID.
func (e *testEnv) startCart(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodGet, "/cart", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /cart: expected 200, got %d", rec.Code)
	}
	c := cartCookie(rec)
	if c == nil || c.Value == "" {
		t.Fatal("expected a cart cookie on first visit")
	}
	return c.Value
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func errorCodeOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error.Code
}
