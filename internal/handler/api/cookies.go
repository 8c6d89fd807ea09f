package api

import (
	"net/http"

	"github.com/tbraaten/idun/internal/cookie"
)

// cartIDFromCookie retrieves the visitor's cart reference.
// Returns empty string if no cart cookie is present.
func cartIDFromCookie(r *http.Request) string {
	return cookie.Get(r, cookie.CartCookieName)
}
