package api

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/filter"
	"github.com/hpungsan/sift/internal/metrics"
	"github.com/hpungsan/sift/internal/ops"
)

// Handlers contains HTTP route handlers for the API.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	log     *zap.Logger
	version string
}

// createRequest is the POST /strings body. Value is a pointer so a missing
// field can be told apart from an empty one.
type createRequest struct {
	Value *string `json:"value"`
}

// HandleRoot handles GET /: welcome JSON, or the API reference for browsers.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		md, err := docsFS.ReadFile("docs/api.md")
		if err == nil {
			var html []byte
			html, err = renderMarkdownPage(md, h.version)
			if err == nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(html)
				return
			}
		}
		h.fail(w, r, "docs", errors.NewInternal(err))
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the String Analysis API",
		"version": h.version,
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := db.Count(r.Context(), h.db)
	if err != nil {
		h.fail(w, r, "health", err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"status": "ok", "strings": n})
}

// HandleCreate handles POST /strings: analyze and store a value.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Every character is at most 4 UTF-8 bytes; JSON escaping can add more,
	// so leave generous headroom and let ops enforce the character limit.
	if h.cfg.ValueMaxChars > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(h.cfg.ValueMaxChars)*12+1024)
	}

	req, err := decodeCreate(r.Body)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	if req.Value == nil {
		h.fail(w, r, "create", errors.NewInvalidInput("value is required"))
		return
	}

	entry, err := ops.Create(r.Context(), h.db, h.cfg, ops.CreateInput{Value: *req.Value})
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	h.log.Info("string created",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("id", entry.ID),
	)
	metrics.RecordOperation("create", "ok")
	renderJSON(w, http.StatusCreated, entry)
}

// HandleFetch handles GET /strings/{value}: exact-value lookup.
func (h *Handlers) HandleFetch(w http.ResponseWriter, r *http.Request) {
	entry, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{Value: r.PathValue("value")})
	if err != nil {
		h.fail(w, r, "fetch", err)
		return
	}

	metrics.RecordOperation("fetch", "ok")
	renderJSON(w, http.StatusOK, entry)
}

// HandleFilter handles GET /strings: structured query-parameter filtering.
func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	set, err := filter.FromParams(r.URL.Query())
	if err != nil {
		h.fail(w, r, "filter", err)
		return
	}

	result, err := ops.Filter(r.Context(), h.db, ops.FilterInput{Filters: set})
	if err != nil {
		h.fail(w, r, "filter", err)
		return
	}

	metrics.RecordOperation("filter", "ok")
	renderJSON(w, http.StatusOK, result)
}

// HandleQuery handles GET /strings/filter-by-natural-language?query=...
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Query(r.Context(), h.db, ops.QueryInput{Query: r.URL.Query().Get("query")})
	if err != nil {
		h.fail(w, r, "query", err)
		return
	}

	metrics.RecordOperation("query", "ok")
	renderJSON(w, http.StatusOK, result)
}

// HandleDelete handles DELETE /strings/{value}: permanent removal.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{Value: r.PathValue("value")})
	if err != nil {
		h.fail(w, r, "delete", err)
		return
	}

	h.log.Info("string deleted",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("id", result.ID),
	)
	metrics.RecordOperation("delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// decodeCreate reads exactly one JSON object from body.
func decodeCreate(body io.Reader) (createRequest, error) {
	var req createRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return req, decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err != nil {
			var maxErr *http.MaxBytesError
			if stderrors.As(err, &maxErr) {
				return req, errors.NewBodyTooLarge(maxErr.Limit)
			}
		}
		return req, errors.NewInvalidInput("request body must contain a single JSON object")
	}
	return req, nil
}

// decodeError maps a JSON decode failure to the client-facing error.
func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &maxErr):
		return errors.NewBodyTooLarge(maxErr.Limit)
	case stderrors.As(err, &typeErr) && typeErr.Field == "value":
		return errors.NewInvalidInput("value must be a string")
	default:
		return errors.NewInvalidInput("request body must be a JSON object")
	}
}

// fail records the failed operation and renders err.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.RecordOperation(op, string(errors.As(err).Code))
	renderError(w, r, h.log, err)
}
