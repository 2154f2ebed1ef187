package http

import (
	"net/http"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating gateway in front of this service.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

const actorContextKey = "actor"

// ActorMiddleware resolves the caller identity from the gateway headers and
// stores a typed Actor claim on the request context. Requests without a valid
// identity are rejected before reaching any handler.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing or malformed " + HeaderActorID + " header",
				})
			}

			role, err := account.ParseRole(ctx.Request().Header.Get(HeaderActorRole))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing or malformed " + HeaderActorRole + " header",
				})
			}

			actor, err := account.NewActor(id, role)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// actorFrom returns the Actor claim stored by ActorMiddleware.
func actorFrom(ctx echo.Context) (account.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(account.Actor)
	return actor, ok
}
