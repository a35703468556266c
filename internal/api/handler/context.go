package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the session identity injected by the Auth
// middleware and performs a fast-fail check before any service call:
// a non-empty email proves the middleware ran for this request.
func ctxIdentity(c echo.Context) (email, displayName, role string, err error) {
	email, _ = c.Get("email").(string)
	if email == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	displayName, _ = c.Get("display_name").(string)
	role, _ = c.Get("role").(string)
	return email, displayName, role, nil
}
