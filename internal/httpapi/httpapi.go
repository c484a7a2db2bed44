// Package httpapi exposes pkg/schema's Expand and ExtractAttributeNames
// operations over HTTP, for callers without a Go import path into this
// module.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pgschema-labs/pgschema/pkg/schema"
)

type expandRequest struct {
	File          string            `json:"file"`
	Attrs         map[string]string `json:"attrs"`
	IgnoreUnknown bool              `json:"ignoreUnknown"`
	IgnoreEmpty   bool              `json:"ignoreEmpty"`
	PgsqlVersion  string            `json:"pgsqlVersion"`
}

type expandResponse struct {
	Output string `json:"output"`
}

type attributesRequest struct {
	Buffer string `json:"buffer"`
}

type attributesResponse struct {
	Names []string `json:"names"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewRouter builds the chi router. This surface only exposes ExpandFile
// and ExtractAttributeNames — schemasRoot is accepted for signature
// symmetry with the CLI's config but not otherwise used here; object
// resolution stays a Go-only entry point (pkg/schema/resolver via the
// expand-object CLI command).
func NewRouter(schemasRoot string, logger *slog.Logger) chi.Router {
	_ = schemasRoot
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealthz)
	r.Post("/v1/expand", handleExpand)
	r.Post("/v1/attributes", handleAttributes)
	return r
}

// Serve starts the tooling API and blocks until ctx is cancelled.
func Serve(ctx context.Context, addr, schemasRoot string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(schemasRoot, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type correlationIDKey struct{}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Correlation-Id", id)
		ctx := context.WithValue(r.Context(), correlationIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func correlationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("correlation_id", correlationID(r.Context())),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleExpand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", fmt.Errorf("decode request: %w", err))
		return
	}

	p := schema.NewParser()
	if req.PgsqlVersion != "" {
		if err := p.SetVersion(req.PgsqlVersion); err != nil {
			writeError(w, http.StatusBadRequest, "", err)
			return
		}
	}
	p.IgnoreUnknown(req.IgnoreUnknown)
	p.IgnoreEmpty(req.IgnoreEmpty)

	out, err := p.ExpandFile(r.Context(), req.File, schema.Environment(req.Attrs))
	if err != nil {
		writeSchemaError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expandResponse{Output: out})
}

func handleAttributes(w http.ResponseWriter, r *http.Request) {
	var req attributesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", fmt.Errorf("decode request: %w", err))
		return
	}

	names, err := schema.ExtractAttributeNames(schema.LoadBuffer(req.Buffer, "[request body]"))
	if err != nil {
		writeSchemaError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attributesResponse{Names: names})
}

func writeSchemaError(w http.ResponseWriter, err error) {
	var schemaErr schema.Error
	if errors.As(err, &schemaErr) {
		writeError(w, http.StatusUnprocessableEntity, schemaErr.Kind().String(), err)
		return
	}
	writeError(w, http.StatusInternalServerError, "", err)
}

func writeError(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, errorResponse{Kind: kind, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
