package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hazyhaar/textnorm/pkg/kit"
)

// NewRouter returns an http.Handler with all normalization API routes.
func NewRouter(eps *Endpoints) http.Handler {
	mux := http.NewServeMux()
	h := &handler{eps: eps}

	mux.HandleFunc("GET /v1/normalize/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/normalize/batch", h.handleBatch)
	mux.HandleFunc("GET /v1/normalize/{text}", h.handleNormalize)
	mux.HandleFunc("POST /v1/trace", h.handleTrace)
	mux.HandleFunc("GET /v1/lexicon", h.handleLexicon)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	eps *Endpoints
}

// --- normalize single text ---

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	text := r.PathValue("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}

	resp, err := h.eps.Normalize(r.Context(), &normalizeReq{Text: text})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- normalize batch ---

type httpBatchRequest struct {
	Texts []string `json:"texts"`
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.eps.Batch(r.Context(), &batchReq{Texts: req.Texts})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- trace ---

type httpTraceRequest struct {
	Text string `json:"text"`
}

func (h *handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req httpTraceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.eps.Trace(r.Context(), &normalizeReq{Text: req.Text})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- lexicon ---

func (h *handler) handleLexicon(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.Lexicon(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status         string   `json:"status"`
	LexiconID      string   `json:"lexicon_id"`
	LexiconEntries int      `json:"lexicon_entries"`
	Stages         []string `json:"stages"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	lex := h.eps.pipeline.Lexicon()
	stages := h.eps.pipeline.Stages()
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.Name
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		LexiconID:      lex.ID,
		LexiconEntries: lex.Len(),
		Stages:         names,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeEndpointError maps input errors to 400 and everything else to 500.
func writeEndpointError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, kit.ErrInvalidRequest) {
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
