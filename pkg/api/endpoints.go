package api

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/textnorm/pkg/kit"
	"github.com/hazyhaar/textnorm/pkg/textnorm"
)

// maxBatch bounds the number of texts per batch request.
const maxBatch = 1000

// Shared request/response types used by both HTTP and MCP transports.

type normalizeReq struct {
	Text string
}

type batchReq struct {
	Texts []string
}

type normalizeResponse struct {
	Text       string `json:"text"`
	Normalized string `json:"normalized"`
}

type batchResponse struct {
	Results []normalizeResponse `json:"results"`
}

type traceResponse struct {
	Text   string                 `json:"text"`
	Stages []textnorm.StageResult `json:"stages"`
}

// Endpoints are the actions exposed over HTTP and MCP, each wrapped with
// request IDs and logging.
type Endpoints struct {
	Normalize kit.Endpoint
	Batch     kit.Endpoint
	Trace     kit.Endpoint
	Lexicon   kit.Endpoint

	pipeline *textnorm.Pipeline
}

// NewEndpoints builds the endpoints over p. Batches use up to workers goroutines.
func NewEndpoints(p *textnorm.Pipeline, logger *slog.Logger, workers int) *Endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &Endpoints{
		Normalize: wrap("normalize", normalizeEndpoint(p)),
		Batch:     wrap("normalize_batch", batchEndpoint(p, workers)),
		Trace:     wrap("trace", traceEndpoint(p)),
		Lexicon:   wrap("lexicon", lexiconEndpoint(p)),
		pipeline:  p,
	}
}

func normalizeEndpoint(p *textnorm.Pipeline) kit.Endpoint {
	return kit.Typed(func(_ context.Context, req *normalizeReq) (any, error) {
		return normalizeResponse{Text: req.Text, Normalized: p.Normalize(req.Text)}, nil
	})
}

func batchEndpoint(p *textnorm.Pipeline, workers int) kit.Endpoint {
	return kit.Typed(func(ctx context.Context, req *batchReq) (any, error) {
		if len(req.Texts) == 0 {
			return nil, kit.Invalid("texts array is empty")
		}
		if len(req.Texts) > maxBatch {
			return nil, kit.Invalid("too many texts (max %d, got %d)", maxBatch, len(req.Texts))
		}
		normalized, err := p.NormalizeAll(ctx, req.Texts, workers)
		if err != nil {
			return nil, err
		}
		results := make([]normalizeResponse, len(req.Texts))
		for i, text := range req.Texts {
			results[i] = normalizeResponse{Text: text, Normalized: normalized[i]}
		}
		return batchResponse{Results: results}, nil
	})
}

func traceEndpoint(p *textnorm.Pipeline) kit.Endpoint {
	return kit.Typed(func(_ context.Context, req *normalizeReq) (any, error) {
		return traceResponse{Text: req.Text, Stages: p.Trace(req.Text)}, nil
	})
}

func lexiconEndpoint(p *textnorm.Pipeline) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return p.Lexicon(), nil
	}
}
