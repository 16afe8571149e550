package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

// IdentityKey is the context key under which the resolved identity is stored.
const IdentityKey = "identity"

// Auth validates the bearer token and resolves it into a domain.Identity,
// injected into the request context. A structurally valid token whose
// session has been revoked (logout) or expired does not authenticate.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			identity := domain.Identity{
				UserID:       stringClaim(claims, "sub"),
				Username:     stringClaim(claims, "username"),
				Organization: stringClaim(claims, "organization"),
				Role:         stringClaim(claims, "role"),
				TokenID:      stringClaim(claims, "jti"),
			}
			if identity.TokenID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			live, err := sessions.Exists(c.Request().Context(), identity.TokenID)
			if err != nil {
				if errors.Is(err, domain.ErrUnavailable) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
				}
				return err
			}
			if !live {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
