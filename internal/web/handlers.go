package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sheetops/sheetops/internal/core"
)

// handleHealth returns service health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":     "ok",
		"operations": core.OpCount(),
	})
}

// handleListOperations returns all registered operations grouped for display.
func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListOperations())
}

// handleRun executes one operation against an uploaded workbook and returns
// the run record. The artifact itself is fetched separately via its run ID.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	opKey := chi.URLParam(r, "opKey")
	if opKey == "" {
		writeError(w, r, http.StatusBadRequest, "missing operation key")
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read file")
		return
	}

	result, err := s.service.RunOperation(r.Context(), opKey, header.Filename, data, requestMeta(r))
	if err != nil {
		writeError(w, r, runErrorStatus(err), err.Error())
		return
	}

	writeJSON(w, result)
}

// handleArtifact streams a retained artifact as a file download.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if runID == "" {
		writeError(w, r, http.StatusBadRequest, "missing run ID")
		return
	}

	result, err := s.service.GetRun(runID)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "artifact expired or not found")
		return
	}

	if audit := s.service.Audit(); audit != nil {
		meta := requestMeta(r)
		if _, err := audit.Log(r.Context(), core.AuditLogParams{
			Action:    core.ActionDownload,
			OpKey:     result.OpKey,
			RunID:     result.RunID,
			FileName:  result.ArtifactName,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		}); err != nil {
			// Download still proceeds; the audit gap is only logged.
			slog.Error("failed to audit download", "run_id", result.RunID, "error", err)
		}
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.ArtifactName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	http.ServeContent(w, r, result.ArtifactName, result.CreatedAt, bytes.NewReader(result.Artifact))
}

// handleHistory returns persisted run history for one operation key.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	opKey := chi.URLParam(r, "opKey")
	if opKey == "" {
		writeError(w, r, http.StatusBadRequest, "missing operation key")
		return
	}
	if _, ok := core.Get(opKey); !ok {
		writeError(w, r, http.StatusNotFound, "unknown operation")
		return
	}

	limit := queryInt(r, "limit", 50)
	history, err := s.service.RunHistory(r.Context(), opKey, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, map[string]interface{}{
		"op_key":  opKey,
		"history": history,
	})
}

// handleAuditLog returns audit entries with pagination.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	audit := s.service.Audit()
	if audit == nil {
		writeError(w, r, http.StatusServiceUnavailable, "audit log not available")
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	entries, err := audit.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, map[string]interface{}{
		"entries": entries,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleAuditLogExport streams the full audit log as CSV.
func (s *Server) handleAuditLogExport(w http.ResponseWriter, r *http.Request) {
	audit := s.service.Audit()
	if audit == nil {
		writeError(w, r, http.StatusServiceUnavailable, "audit log not available")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="audit-log.csv"`)

	if err := audit.ExportCSV(r.Context(), w); err != nil {
		// Headers are already sent; nothing useful to return to the client.
		slog.Error("audit export failed", "error", err)
	}
}

// requestMeta extracts client metadata for audit logging.
func requestMeta(r *http.Request) core.RequestMeta {
	return core.RequestMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// runErrorStatus maps service errors to HTTP status codes.
func runErrorStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownOperation):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// queryInt parses an integer query parameter with a fallback default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
