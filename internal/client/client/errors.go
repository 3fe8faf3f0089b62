package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/phishshield/internal/common"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")
)

// User-facing messages for failures that carry no server text.
const (
	MsgNetworkError      = "Network error occurred. Please check your connection and try again."
	MsgMalformedResponse = "Malformed response from server"
	MsgSessionStorage    = "Could not store session locally"
	MsgChatThrottled     = "You're sending messages too quickly. Please wait a moment."
)

// InputError is a request rejected locally before it reached the network.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return common.ErrorValidation
}

// StatusError is a non-2xx response. It unwraps to the sentinel matching
// its status class.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRequestFailed
	}
}

// mapError classifies a transport failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// statusError builds the error for a non-2xx response, preferring the
// server's own error or message field.
func statusError(resp *Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &body) == nil {
		msg = strings.TrimSpace(body.Error)
		if msg == "" {
			msg = strings.TrimSpace(body.Message)
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	var se *StatusError
	var ie *InputError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Message
	case errors.As(err, &ie):
		return ie.Message
	case errors.Is(err, ErrUnavailable):
		return MsgNetworkError
	case errors.Is(err, ErrMalformedResponse):
		return MsgMalformedResponse
	case errors.Is(err, context.Canceled):
		return "Request canceled"
	default:
		return err.Error()
	}
}
