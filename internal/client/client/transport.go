package client

import (
	"context"
	"net/http"
	"net/url"
)

// Request is a transport-neutral API call. Path is relative to the API root,
// e.g. "/auth/login".
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport carries a Request to the API and returns the raw response. An
// error means no response was obtained at all; non-2xx statuses are
// responses, not errors.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
