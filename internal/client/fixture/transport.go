package fixture

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/common"
)

// Transport implements client.Transport over a Backend.
type Transport struct {
	backend *Backend
	latency time.Duration
}

// NewTransport serves b in-process, waiting latency before each answer.
func NewTransport(b *Backend, latency time.Duration) *Transport {
	return &Transport{backend: b, latency: latency}
}

func (t *Transport) Do(ctx context.Context, req *client.Request) (*client.Response, error) {
	if t.latency > 0 {
		timer := time.NewTimer(t.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, body := t.route(ctx, req)
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &client.Response{StatusCode: status, Body: b}, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func fail(err error) (int, any) {
	status, msg := ErrorResponse(err)
	return status, errorBody{Error: msg}
}

func decode(req *client.Request, v any) error {
	if err := json.Unmarshal(req.Body, v); err != nil {
		return ErrBadRequest
	}
	return nil
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
}

func (t *Transport) user(req *client.Request) (string, error) {
	return t.backend.Authenticate(BearerToken(req.Header.Get(common.AuthorizationHeader)))
}

// optionalUser resolves the caller when a valid credential is attached and
// returns "" otherwise.
func (t *Transport) optionalUser(req *client.Request) string {
	id, err := t.user(req)
	if err != nil {
		return ""
	}
	return id
}

func (t *Transport) route(ctx context.Context, req *client.Request) (int, any) {
	b := t.backend

	switch req.Method + " " + req.Path {
	case "POST /auth/login":
		var in models.LoginRequest
		if err := decode(req, &in); err != nil {
			return fail(err)
		}
		out, err := b.Login(in)
		if err != nil {
			return fail(err)
		}
		return http.StatusOK, out

	case "POST /auth/signup":
		var in models.SignupRequest
		if err := decode(req, &in); err != nil {
			return fail(err)
		}
		out, err := b.Signup(ctx, in)
		if err != nil {
			return fail(err)
		}
		return http.StatusCreated, out

	case "GET /user/me":
		id, err := t.user(req)
		if err != nil {
			return fail(err)
		}
		u, err := b.Profile(id)
		if err != nil {
			return fail(err)
		}
		return http.StatusOK, u

	case "PUT /user/me":
		id, err := t.user(req)
		if err != nil {
			return fail(err)
		}
		var patch models.UserPatch
		if err := decode(req, &patch); err != nil {
			return fail(err)
		}
		u, err := b.UpdateProfile(ctx, id, patch)
		if err != nil {
			return fail(err)
		}
		return http.StatusOK, u

	case "GET /dashboard/summary":
		if _, err := t.user(req); err != nil {
			return fail(err)
		}
		return http.StatusOK, b.Dashboard()

	case "GET /quiz":
		count, _ := strconv.Atoi(req.Query.Get("count"))
		return http.StatusOK, b.Quiz(count)

	case "POST /quiz/submit":
		var in models.QuizSubmission
		if err := decode(req, &in); err != nil {
			return fail(err)
		}
		res, err := b.Submit(ctx, t.optionalUser(req), in.Answers)
		if err != nil {
			return fail(err)
		}
		return http.StatusOK, res

	case "POST /chat":
		var in models.ChatRequest
		if err := decode(req, &in); err != nil {
			return fail(err)
		}
		out, err := b.Chat(in)
		if err != nil {
			return fail(err)
		}
		return http.StatusOK, out
	}

	return http.StatusNotFound, errorBody{Error: MsgEndpointNotFound}
}
