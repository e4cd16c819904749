package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"budgetdash/internal/workbook"
)

// handleExport writes the labeled corpus to the configured CSV path and
// serves the file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := s.session.ExportCSV(s.cfg.ExportPath); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err))
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="labeled_transactions.csv"`)
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, s.cfg.ExportPath)
}

// handleTemplate serves the monthly workbook template, generating it on
// first request. ?blank=1 serves the header-only variant.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	blank := r.URL.Query().Get("blank") == "1"
	name := "Template.xlsx"
	if blank {
		name = "BlankTemplate.xlsx"
	}
	path := filepath.Join(s.cfg.DataDir, name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := workbook.WriteTemplate(path, blank, s.policy.IncomeAnchorRow, s.policy.IncomeAnchorCol); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("template generation failed: %v", err))
			return
		}
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
