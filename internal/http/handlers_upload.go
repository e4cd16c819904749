package http

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"budgetdash/internal/ingest"
)

// maxUploadBytes bounds a whole upload request.
const maxUploadBytes = 32 << 20

type uploadResponse struct {
	Accepted []string `json:"accepted"`
	Rejected []string `json:"rejected"`
}

// handleUpload receives one or more monthly workbooks and drops them into
// the data directory. Each file is accepted or rejected on its own; any
// accepted file triggers a reload so the dashboard reflects it immediately.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files in upload; use the 'files' form field")
		return
	}

	resp := uploadResponse{Accepted: []string{}, Rejected: []string{}}
	for _, header := range files {
		name := filepath.Base(header.Filename)
		if err := s.saveUpload(header, name); err != nil {
			resp.Rejected = append(resp.Rejected, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		resp.Accepted = append(resp.Accepted, name)
	}

	slog.InfoContext(r.Context(), "Upload processed",
		"accepted", len(resp.Accepted),
		"rejected", len(resp.Rejected))

	if len(resp.Accepted) > 0 {
		s.session.Reload(r.Context())
	}

	status := http.StatusOK
	if len(resp.Accepted) == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func (s *Server) saveUpload(header *multipart.FileHeader, name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return fmt.Errorf("only .xlsx files are accepted")
	}
	if ingest.TemplateFiles[name] {
		return fmt.Errorf("%s is a reserved template name", name)
	}

	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.DataDir, name))
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
