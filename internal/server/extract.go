package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jklim/schoolcal/internal/event"
	"github.com/jklim/schoolcal/internal/extract"
	"github.com/jklim/schoolcal/internal/llm"
)

// extractRequest is the JSON request body for POST /api/v1/extract.
type extractRequest struct {
	Images        []string             `json:"images"`
	CustomPrompt  string               `json:"customPrompt,omitempty"`
	EnabledFields *event.EnabledFields `json:"enabledFields,omitempty"`
}

// extractResponse is the JSON response for both extraction endpoints.
// ICSContent is "" when Events is empty.
type extractResponse struct {
	Events     []event.Event `json:"events"`
	ICSContent string        `json:"icsContent"`
}

// handleExtract runs extraction on caller-rasterized page images.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err, s.logger)
		return
	}

	result, err := s.svc.Extract(r.Context(), llm.ExtractRequest{
		Images:        req.Images,
		CustomPrompt:  req.CustomPrompt,
		EnabledFields: req.EnabledFields,
	})
	if err != nil {
		s.writeClassified(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Events:     result.Events,
		ICSContent: result.ICSContent,
	}, s.logger)
}

// handleUpload accepts a multipart PDF upload ("file" field, optional
// "customPrompt" and JSON "enabledFields" fields), rasterizes it
// server-side, and runs the same pipeline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or unreadable \"file\" upload", err, s.logger)
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read the uploaded file. Please try another file.", err, s.logger)
		return
	}

	var fields *event.EnabledFields
	if raw := r.FormValue("enabledFields"); raw != "" {
		var f event.EnabledFields
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid enabledFields", err, s.logger)
			return
		}
		fields = &f
	}

	result, err := s.svc.ExtractFromPDF(r.Context(), pdf, r.FormValue("customPrompt"), fields)
	if err != nil {
		s.writeClassified(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Events:     result.Events,
		ICSContent: result.ICSContent,
	}, s.logger)
}

// writeClassified translates a pipeline error into the three-class
// response contract: validation → 400, configuration and generic → 500,
// each with its fixed user-facing message.
func (s *Server) writeClassified(w http.ResponseWriter, err error) {
	class, msg := extract.Classify(err)
	status := http.StatusInternalServerError
	if class == extract.ClassValidation {
		status = http.StatusBadRequest
	}
	writeError(w, status, msg, err, s.logger)
}
