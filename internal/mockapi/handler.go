package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

// handleError renders every failure as {"error": "..."}. Unknown routes and
// wrong methods both answer 404 "Endpoint not found".
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := fixture.ErrorResponse(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			status, msg = http.StatusNotFound, fixture.MsgEndpointNotFound
		default:
			status, msg = he.Code, http.StatusText(he.Code)
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "error", err)
	}

	if err := c.JSON(status, errorBody{Error: msg}); err != nil {
		s.logger.Error(c.Request().Context(), "failed to write error response", "error", err)
	}
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return fmt.Errorf("%w: %w", fixture.ErrBadRequest, err)
	}
	return nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	out, err := s.backend.Login(req)
	if err != nil {
		s.logger.Info(c.Request().Context(), "login rejected", "email", req.Email)
		return err
	}

	s.logger.Info(c.Request().Context(), "logged in", "user_id", out.User.ID)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	out, err := s.backend.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "registered", "user_id", out.User.ID)
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) profile(c echo.Context) error {
	u, err := s.backend.Profile(userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	var patch models.UserPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	u, err := s.backend.UpdateProfile(c.Request().Context(), userID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.backend.Dashboard())
}

func (s *Server) quiz(c echo.Context) error {
	count, _ := strconv.Atoi(c.QueryParam("count"))
	return c.JSON(http.StatusOK, s.backend.Quiz(count))
}

func (s *Server) submitQuiz(c echo.Context) error {
	var req models.QuizSubmission
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := s.backend.Submit(c.Request().Context(), userID(c), req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) chat(c echo.Context) error {
	var req models.ChatRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	out, err := s.backend.Chat(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
