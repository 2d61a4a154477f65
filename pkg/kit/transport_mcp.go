package kit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPDecoder turns tool arguments into the request value of an Endpoint.
type MCPDecoder func(mcp.CallToolRequest) (any, error)

// RegisterMCPTool exposes endpoint as an MCP tool. Decode and endpoint
// failures come back as tool errors so the session stays usable. String
// responses are returned as plain text, anything else as JSON.
func RegisterMCPTool(srv *server.MCPServer, tool mcp.Tool, endpoint Endpoint, decode MCPDecoder) {
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request, err := decode(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// Transports that own their sessions (QUIC) tag the context first.
		if _, ok := TransportFrom(ctx); !ok {
			ctx = WithTransport(ctx, TransportMCPStdio)
		}

		resp, err := endpoint(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if s, ok := resp.(string); ok {
			return mcp.NewToolResultText(s), nil
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

// StringArg returns a required string argument. An empty string is a valid
// value; a missing or non-string one is not.
func StringArg(req mcp.CallToolRequest, name string) (string, error) {
	v, ok := req.GetArguments()[name].(string)
	if !ok {
		return "", Invalid("argument %q is required", name)
	}
	return v, nil
}
