package http

import (
	"net/http"
	"strings"

	"aidmatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the upstream gateway after it verifies the caller.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

const actorKey = "actor"

// RequireActor rejects requests without a well-formed identity and stores the
// actor on the echo context.
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := kernel.UUIDFromString(strings.TrimSpace(c.Request().Header.Get(HeaderActorID)))
		if err != nil {
			return unauthenticated(c, "missing or malformed "+HeaderActorID)
		}
		role, err := kernel.ParseRole(strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderActorRole))))
		if err != nil {
			return unauthenticated(c, "missing or unknown "+HeaderActorRole)
		}
		actor, err := kernel.NewActor(id, role)
		if err != nil {
			return unauthenticated(c, err.Error())
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}

func unauthenticated(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
