package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
	"github.com/its-jojoo/stringscope/internal/metric"
	"github.com/its-jojoo/stringscope/internal/usecase/catalog"
	"github.com/its-jojoo/stringscope/internal/usecase/search"
)

const (
	maxBodyBytes = 1 << 20
	welcomeText  = "Welcome to the String Analyzer Service API"
)

// Counter reports how many records are stored. Satisfied by storage.Store.
type Counter interface {
	Count(ctx context.Context, f core.Filter) (int, error)
}

type handlers struct {
	catalog *catalog.Service
	search  *search.Service
	counter Counter
	metrics *metric.Metrics
}

type createRequest struct {
	Value json.RawMessage `json:"value"`
}

// decodeValue extracts the "value" field. Missing or null is invalid input,
// any JSON type other than string is unprocessable.
func decodeValue(body io.Reader) (string, error) {
	var req createRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", errors.NewInvalidInputError("invalid JSON body")
	}
	raw := bytes.TrimSpace(req.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.NewInvalidInputError(`invalid request body or missing "value" field`)
	}
	if raw[0] != '"' {
		return "", errors.NewUnprocessableError(`invalid data type for "value" (must be string)`)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", errors.NewInvalidInputError("invalid JSON body")
	}
	return v, nil
}

func (h *handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	value, err := decodeValue(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	rec, err := h.catalog.Create(r.Context(), value)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	h.metrics.StringsCreated.Inc()
	respondJSON(w, http.StatusCreated, rec)
}

func (h *handlers) handleList(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	res, err := h.search.List(r.Context(), params)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) handleNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	res, err := h.search.Interpret(r.Context(), r.URL.Query().Get("query"))
	if errors.Is(err, errors.ErrUninterpretable) {
		h.metrics.NLQuery(false)
	} else if err == nil {
		h.metrics.NLQuery(true)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	rec, err := h.catalog.Get(r.Context(), value)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), value); err != nil {
		respondErr(w, r, err)
		return
	}
	h.metrics.StringsDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, welcomeText)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.counter.Count(r.Context(), nil)
	if err != nil {
		respondErr(w, r, errors.Wrap(err, "health count"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": n})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "this route does not exist")
}

// pathValue returns the decoded {value} segment. The router keeps paths
// encoded so values containing "/" survive routing.
func pathValue(r *http.Request) (string, error) {
	v, err := url.PathUnescape(mux.Vars(r)["value"])
	if err != nil {
		return "", errors.NewInvalidInputError("invalid path encoding")
	}
	return v, nil
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}
