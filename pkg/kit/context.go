package kit

import "context"

// Transport names the surface a call arrived through. It is attached to the
// context so middleware can log it.
type Transport string

const (
	TransportHTTP     Transport = "http"
	TransportMCPStdio Transport = "mcp_stdio"
	TransportMCPQUIC  Transport = "mcp_quic"
)

type (
	transportKey struct{}
	requestIDKey struct{}
)

func WithTransport(ctx context.Context, t Transport) context.Context {
	return context.WithValue(ctx, transportKey{}, t)
}

// TransportFrom reports the transport set on ctx, if any.
func TransportFrom(ctx context.Context) (Transport, bool) {
	t, ok := ctx.Value(transportKey{}).(Transport)
	return t, ok
}

// GetTransport defaults to TransportHTTP, the only surface that does not tag
// its contexts.
func GetTransport(ctx context.Context) Transport {
	if t, ok := TransportFrom(ctx); ok {
		return t
	}
	return TransportHTTP
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
