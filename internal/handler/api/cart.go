package api

import (
	"net/http"

	"github.com/tbraaten/idun/internal/cookie"
	"github.com/tbraaten/idun/internal/domain"
	"github.com/tbraaten/idun/internal/handler"
)

// CartHandler serves the cart endpoints.
type CartHandler struct {
	carts   domain.CartService
	cookies *cookie.Config
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartService, cookies *cookie.Config) *CartHandler {
	return &CartHandler{
		carts:   carts,
		cookies: cookies,
	}
}

type productJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
}

type lineItemJSON struct {
	ID             string      `json:"id"`
	Quantity       int32       `json:"quantity"`
	Product        productJSON `json:"product"`
	LineTotalCents int64       `json:"line_total_cents"`
}

type cartJSON struct {
	ID         string         `json:"id"`
	LineItems  []lineItemJSON `json:"line_items"`
	TotalCents int64          `json:"total_cents"`
	ItemCount  int            `json:"item_count"`
}

func toCartJSON(view *domain.CartView) cartJSON {
	out := cartJSON{
		ID:         view.Cart.ID.String(),
		LineItems:  make([]lineItemJSON, len(view.LineItems)),
		TotalCents: view.TotalCents,
		ItemCount:  view.ItemCount,
	}
	for i, line := range view.LineItems {
		out.LineItems[i] = toLineItemJSON(&line)
	}
	return out
}

func toLineItemJSON(line *domain.LineItem) lineItemJSON {
	return lineItemJSON{
		ID:             line.ID.String(),
		Quantity:       line.Quantity,
		Product: productJSON{
			ID:         line.Product.ID.String(),
			Name:       line.Product.Name,
			PriceCents: line.Product.PriceCents,
			ImageURL:   line.Product.ImageURL,
		},
		LineTotalCents: line.LineTotalCents,
	}
}

// resolveCart maps the cookie-held cart reference to a cart, creating one
// if needed, and refreshes the cookie when the reference changes.
func (h *CartHandler) resolveCart(w http.ResponseWriter, r *http.Request) (*domain.Cart, error) {
	c, created, err := h.carts.ResolveCart(r.Context(), cartIDFromCookie(r))
	if err != nil {
		return nil, err
	}
	if created {
		h.cookies.SetCart(w, c.ID.String())
	}
	return c, nil
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	view, err := h.carts.GetCartView(r.Context(), c.ID.String())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toCartJSON(view))
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int32  `json:"quantity"`
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	c, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	line, err := h.carts.AddItem(r.Context(), c.ID.String(), req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, toLineItemJSON(line))
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

// UpdateItem handles PATCH /cart/items/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("id")

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	c, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	line, err := h.carts.UpdateQuantity(r.Context(), c.ID.String(), lineID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toLineItemJSON(line))
}

// RemoveItem handles DELETE /cart/items/{id}. Removing an item that is
// already gone still returns 204.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("id")

	c, err := h.resolveCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), c.ID.String(), lineID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Empty handles DELETE /cart. The cart is deleted outright and the
// cookie cleared; the next request starts a fresh cart.
func (h *CartHandler) Empty(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromCookie(r)
	if cartID != "" {
		if err := h.carts.EmptyCart(r.Context(), cartID); err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	h.cookies.ClearCart(w)
	w.WriteHeader(http.StatusNoContent)
}
