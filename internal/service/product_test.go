package service

import (
	"context"
	"testing"

	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/repository/product"
)

func TestProductService_GetProduct_Success(t *testing.T) {
	products := product.NewMemory()
	p, err := products.Create(context.Background(), product.CreateProductInput{
		Name:       "Ceramic Mug",
		PriceCents: 1200,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	svc := NewProductService(products)
	got, err := svc.GetProduct(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if got.Name != "Ceramic Mug" || got.PriceCents != 1200 {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	svc := NewProductService(product.NewMemory())

	for _, id := range []string{"not-a-uuid", "99999999-9999-9999-9999-999999999999"} {
		_, err := svc.GetProduct(context.Background(), id)
		if domain.ErrorCode(err) != domain.ENOTFOUND {
			t.Errorf("GetProduct(%q): expected ENOTFOUND, got %v", id, err)
		}
	}
}

func TestProductService_ListProducts_SortedByName(t *testing.T) {
	products := product.NewMemory()
	for _, name := range []string{"Mug", "Beans", "Filter"} {
		if _, err := products.Create(context.Background(), product.CreateProductInput{Name: name, PriceCents: 100}); err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}

	svc := NewProductService(products)
	list, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}
	want := []string{"Beans", "Filter", "Mug"}
	for i, p := range list {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}
