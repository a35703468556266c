package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// GuardMessage is returned whenever a protected route is hit without a
// live session. The UI hides those paths when signed out; this is the
// defensive backstop.
const GuardMessage = "You must be signed in to update availability."

// TokenChecker reports whether a token id has been revoked (signed out).
type TokenChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the JWT, rejects revoked tokens, and injects the
// session identity into the request context.
func Auth(jwtSecret string, checker TokenChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, GuardMessage)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, GuardMessage)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, GuardMessage)
			}

			if jti, _ := claims["jti"].(string); jti != "" && checker != nil {
				revoked, err := checker.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					// Revocation store unreachable: accept the token rather
					// than lock every live session out.
					revoked = false
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, GuardMessage)
				}
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("display_name", claims["name"])
			c.Set("role", claims["role"])
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
