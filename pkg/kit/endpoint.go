package kit

import (
	"context"
	"errors"
	"fmt"
)

// Endpoint is one action shared by every transport. HTTP handlers and MCP
// tools decode their input into a request value and call the same Endpoint.
type Endpoint func(ctx context.Context, request any) (response any, err error)

type Middleware func(Endpoint) Endpoint

// ErrInvalidRequest marks errors caused by the caller's input. Transports map
// it to a client error (HTTP 400, MCP tool error).
var ErrInvalidRequest = errors.New("invalid request")

// Invalid wraps a formatted message with ErrInvalidRequest.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Typed adapts a function over a concrete request type. A request of any
// other type fails with ErrInvalidRequest instead of panicking.
func Typed[Req any](fn func(context.Context, Req) (any, error)) Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(Req)
		if !ok {
			var zero Req
			return nil, Invalid("request is %T, want %T", request, zero)
		}
		return fn(ctx, req)
	}
}

// Chain composes middlewares, first one outermost:
// Chain(a, b, c)(ep) == a(b(c(ep))).
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}
