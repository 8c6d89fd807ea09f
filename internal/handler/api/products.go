package api

import (
	"net/http"

	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/handler"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	products domain.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products domain.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productDetailJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url,omitempty"`
}

func toProductDetailJSON(p *domain.Product) productDetailJSON {
	return productDetailJSON{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
	}
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	out := make([]productDetailJSON, len(products))
	for i := range products {
		out[i] = toProductDetailJSON(&products[i])
	}
	handler.JSON(w, http.StatusOK, out)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toProductDetailJSON(p))
}
