package mockapi

import (
	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

func bearer(c echo.Context) string {
	return fixture.BearerToken(c.Request().Header.Get(common.AuthorizationHeader))
}

// requireUser rejects requests without a valid bearer token and stores the
// caller's id on the context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := s.backend.Authenticate(bearer(c))
		if err != nil {
			return err
		}
		c.Set(userIDKey, id)
		return next(c)
	}
}

// optionalUser resolves the caller when a valid token is attached and lets
// anonymous requests through.
func (s *Server) optionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id, err := s.backend.Authenticate(bearer(c)); err == nil {
			c.Set(userIDKey, id)
		}
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
