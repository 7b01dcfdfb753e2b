package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/katalog/core/session"
)

// roleMiddleware only lets requests through when the session role is one of roles.
func roleMiddleware(sess *session.Session, roles ...session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			current := sess.Role()
			for _, r := range roles {
				if r == current {
					return next(ctx)
				}
			}
			return &session.RoleError{Role: current}
		}
	}
}
