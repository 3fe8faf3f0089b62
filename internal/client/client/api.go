package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/common"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultQuizCount is used when GetQuizQuestions is asked for a
// non-positive number of questions.
const DefaultQuizCount = 5

// API paths relative to the API root.
const (
	PathLogin      = "/auth/login"
	PathSignup     = "/auth/signup"
	PathUserMe     = "/user/me"
	PathDashboard  = "/dashboard/summary"
	PathQuiz       = "/quiz"
	PathQuizSubmit = "/quiz/submit"
	PathChat       = "/chat"
)

// APIClient is the gateway to the PhishShield API. It attaches the stored
// credential to every request and turns every outcome into a Result.
type APIClient struct {
	transport Transport
	tokens    TokenStore
	log       logging.Logger
	chat      *rate.Limiter
	newID     func() string
}

// NewAPIClient builds a client over transport. chatLimiter throttles
// SendChatMessage; nil disables throttling.
func NewAPIClient(transport Transport, tokens TokenStore, log logging.Logger, chatLimiter *rate.Limiter) *APIClient {
	return &APIClient{
		transport: transport,
		tokens:    tokens,
		log:       log.With("component", "api"),
		chat:      chatLimiter,
		newID:     uuid.NewString,
	}
}

func (c *APIClient) Login(ctx context.Context, email, password string) Result[models.AuthPayload] {
	res := call[models.AuthPayload](ctx, c, http.MethodPost, PathLogin, nil,
		models.LoginRequest{Email: email, Password: password})
	return c.keepToken(ctx, res)
}

func (c *APIClient) Signup(ctx context.Context, req models.SignupRequest) Result[models.AuthPayload] {
	res := call[models.AuthPayload](ctx, c, http.MethodPost, PathSignup, nil, req)
	return c.keepToken(ctx, res)
}

// keepToken persists the credential of a successful auth response before
// the result is handed back.
func (c *APIClient) keepToken(ctx context.Context, res Result[models.AuthPayload]) Result[models.AuthPayload] {
	if !res.OK {
		return res
	}
	if res.Data.Token == "" {
		return Fail[models.AuthPayload](fmt.Errorf("%w: empty token", ErrMalformedResponse))
	}
	if err := c.tokens.SetToken(ctx, res.Data.Token); err != nil {
		c.log.Error(ctx, "failed to store token", "error", err)
		return Result[models.AuthPayload]{Error: MsgSessionStorage, Err: err}
	}
	return res
}

// Logout forgets the stored credential. No request is sent.
func (c *APIClient) Logout(ctx context.Context) error {
	return c.tokens.ClearToken(ctx)
}

// StoredToken returns the current credential, "" when there is none.
func (c *APIClient) StoredToken(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// IsAuthenticated reports whether a credential is stored. It says nothing
// about whether the server still accepts it.
func (c *APIClient) IsAuthenticated(ctx context.Context) bool {
	tok, err := c.tokens.Token(ctx)
	return err == nil && tok != ""
}

func (c *APIClient) GetUserProfile(ctx context.Context) Result[models.User] {
	return call[models.User](ctx, c, http.MethodGet, PathUserMe, nil, nil)
}

func (c *APIClient) UpdateUserProfile(ctx context.Context, patch models.UserPatch) Result[models.User] {
	return call[models.User](ctx, c, http.MethodPut, PathUserMe, nil, patch)
}

func (c *APIClient) GetDashboardData(ctx context.Context) Result[models.DashboardData] {
	return call[models.DashboardData](ctx, c, http.MethodGet, PathDashboard, nil, nil)
}

func (c *APIClient) GetQuizQuestions(ctx context.Context, count int) Result[models.QuizSet] {
	if count <= 0 {
		count = DefaultQuizCount
	}
	q := url.Values{"count": {strconv.Itoa(count)}}
	return call[models.QuizSet](ctx, c, http.MethodGet, PathQuiz, q, nil)
}

func (c *APIClient) SubmitQuizResults(ctx context.Context, answers models.QuizAnswers) Result[models.QuizResult] {
	return call[models.QuizResult](ctx, c, http.MethodPost, PathQuizSubmit, nil,
		models.QuizSubmission{Answers: answers})
}

func (c *APIClient) SendChatMessage(ctx context.Context, text string) Result[models.ChatReply] {
	text = strings.TrimSpace(text)
	if text == "" {
		return Fail[models.ChatReply](&InputError{Message: "Message cannot be empty"})
	}

	if c.chat != nil {
		if err := c.chat.Wait(ctx); err != nil {
			c.log.Debug(ctx, "chat throttled", "error", err)
			return Result[models.ChatReply]{Error: MsgChatThrottled, Err: err}
		}
	}

	return call[models.ChatReply](ctx, c, http.MethodPost, PathChat, nil, models.ChatRequest{Message: text})
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*Request, error) {
	req := &Request{
		Method: method,
		Path:   path,
		Query:  query,
		Header: http.Header{},
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, c.newID())

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		req.Body = b
		req.Header.Set("Content-Type", "application/json")
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		// proceed unauthenticated; the server decides
		c.log.Warn(ctx, "failed to read stored token", "error", err)
	}
	if tok != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	return req, nil
}

func call[T any](ctx context.Context, c *APIClient, method, path string, query url.Values, body any) Result[T] {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return Fail[T](err)
	}
	log := c.log.With("method", method, "path", path, "request_id", req.Header.Get(common.RequestIDHeader))

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		err = mapError(err)
		log.Warn(ctx, "request failed", "error", err)
		return Fail[T](err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := statusError(resp)
		log.Info(ctx, "request rejected", "status", resp.StatusCode, "error", err)
		return Fail[T](err)
	}

	var data T
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		log.Warn(ctx, "undecodable response", "status", resp.StatusCode, "error", err)
		return Fail[T](fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)
	return Ok(data)
}

// IsUnauthorized reports whether r failed because the credential was
// rejected.
func IsUnauthorized[T any](r Result[T]) bool {
	return !r.OK && errors.Is(r.Err, ErrUnauthorized)
}
