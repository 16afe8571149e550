package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anrssnbv/flight-requests-backend/internal/api/middleware"
	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - client role requires a non-empty organization; without it the token is
//     structurally valid but operationally unusable, so reject with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(domain.Identity)
	if identity.Role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if identity.Role == domain.RoleClient && identity.Organization == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing organization identity")
	}
	return identity, nil
}
