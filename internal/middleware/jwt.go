package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/utils"
)

// JWTAuth returns an Echo middleware that gates protected routes.  It
// extracts the token from an `Authorization: Bearer <token>` header,
// verifies it with the provided secret and injects the subject user id
// into the request context under `user_id`.  A missing header or a failed
// verification short-circuits with 401 before any downstream handler runs.
//
// The gate performs no record lookup: a valid token for a since-deleted
// user still passes, and the downstream handler answers 404 when it
// fails to load the record.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			c.Set("user_id", uid)
			return next(c)
		}
	}
}

// CurrentUserID retrieves the authenticated user id stored by JWTAuth.
// The boolean is false on routes that did not pass through the gate.
func CurrentUserID(c echo.Context) (uint64, bool) {
	v, ok := c.Get("user_id").(uint64)
	return v, ok
}
