package api

import (
	"net/http"
	"testing"
)

func TestProductList(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []productDetailJSON
	decodeBody(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("expected 2 products, got %d", len(body))
	}
	// Catalog listing is name-ordered.
	if body[0].Name != "Ceramic Mug" || body[1].Name != "Single Origin Coffee" {
		t.Errorf("unexpected order: %s, %s", body[0].Name, body[1].Name)
	}
}

func TestProductGet(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/products/"+e.coffee.ID.String(), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body productDetailJSON
	decodeBody(t, rec, &body)
	if body.Name != "Single Origin Coffee" || body.PriceCents != 1850 {
		t.Errorf("unexpected product: %+v", body)
	}
}

func TestProductGet_NotFound(t *testing.T) {
	e := newTestEnv(t)

	for _, id := range []string{"not-a-uuid", "99999999-9999-9999-9999-999999999999"} {
		rec := e.do(t, http.MethodGet, "/products/"+id, "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET /products/%s: expected 404, got %d", id, rec.Code)
		}
	}
}
