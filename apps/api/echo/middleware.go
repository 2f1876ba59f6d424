package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
)

const principalContextKey = "principal"

var errPrincipalNotFoundInCtx = errors.New("principal not found in echo.Context")

// principalMiddleware attaches the caller identity to every request. This is
// the seam the auth middleware will use once authentication lands.
func principalMiddleware(principal core.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

func getContextPrincipal(ctx echo.Context) (core.Principal, error) {
	if principal, ok := ctx.Get(principalContextKey).(core.Principal); ok {
		return principal, nil
	}
	return core.Principal{}, errPrincipalNotFoundInCtx
}
