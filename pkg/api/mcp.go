package api

import (
	"strings"

	"github.com/hazyhaar/textnorm/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the normalization MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, eps *Endpoints) {
	kit.RegisterMCPTool(srv,
		mcp.NewTool("normalize_text",
			mcp.WithDescription("Normalize one informal text (review, social post): repair encoding, expand slang contractions, canonicalize hashtags, strip accents, lowercase and prune punctuation."),
			mcp.WithString("text", mcp.Required(), mcp.Description("The text to normalize")),
		),
		eps.Normalize, decodeText)

	kit.RegisterMCPTool(srv,
		mcp.NewTool("normalize_batch",
			mcp.WithDescription("Normalize several texts (up to 1000) in one call."),
			mcp.WithString("texts", mcp.Required(), mcp.Description("Newline-separated list of texts to normalize")),
		),
		eps.Batch, decodeLines)

	kit.RegisterMCPTool(srv,
		mcp.NewTool("trace_text",
			mcp.WithDescription("Show the text after each normalization stage, in pipeline order."),
			mcp.WithString("text", mcp.Required(), mcp.Description("The text to trace")),
		),
		eps.Trace, decodeText)

	kit.RegisterMCPTool(srv,
		mcp.NewTool("list_lexicon",
			mcp.WithDescription("List the contraction lexicon entries in the order they are applied."),
		),
		eps.Lexicon, func(mcp.CallToolRequest) (any, error) { return nil, nil })
}

func decodeText(req mcp.CallToolRequest) (any, error) {
	text, err := kit.StringArg(req, "text")
	if err != nil {
		return nil, err
	}
	return &normalizeReq{Text: text}, nil
}

// decodeLines splits on newlines and skips blank lines.
func decodeLines(req mcp.CallToolRequest) (any, error) {
	raw, err := kit.StringArg(req, "texts")
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			texts = append(texts, strings.TrimSuffix(line, "\r"))
		}
	}
	return &batchReq{Texts: texts}, nil
}
