package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the standard error response format.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as JSON and writes it to the response.
// It buffers the encoding to detect errors before writing headers.
func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("http.encode_failed", "error", err)
		writeErrorFallback(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("http.write_failed", "error", err)
	}
}

// writeError writes a JSON error response with consistent format.
// The public message is what clients see; the underlying error is only
// logged, never exposed.
func writeError(w http.ResponseWriter, status int, public string, err error, logger *slog.Logger) {
	if public == "" {
		public = http.StatusText(status)
	}
	if status >= 500 && err != nil {
		logger.Error("http.request_failed", "status", status, "error", err)
	} else if err != nil {
		logger.Info("http.request_rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: public}, logger)
}

// writeErrorFallback writes a plain text error when JSON encoding fails.
// This is a last-resort fallback to avoid infinite recursion.
func writeErrorFallback(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
