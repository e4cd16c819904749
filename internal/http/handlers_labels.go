package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"budgetdash/internal/core"
	"budgetdash/internal/ingest"
)

type (
	// labelEditRequest is one reconciliation entry from the table view.
	// The composite key addresses the transaction; row indexes from a
	// filtered or re-sorted view would be meaningless here.
	labelEditRequest struct {
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Who         string  `json:"who"`
		Label       string  `json:"label"`
	}

	categoryLabelRequest struct {
		Category string `json:"category"`
		Label    string `json:"label"`
	}

	labelEditResponse struct {
		Matched int `json:"matched"`
	}
)

// handleLabelEdits applies a batch of per-transaction label edits.
func (s *Server) handleLabelEdits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var reqs []labelEditRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(reqs) == 0 {
		writeJSON(w, http.StatusOK, labelEditResponse{Matched: 0})
		return
	}

	edits := make([]ingest.LabelEdit, 0, len(reqs))
	for i, req := range reqs {
		label, err := core.ParseLabel(req.Label)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("edit %d: %v", i, err))
			return
		}
		edits = append(edits, ingest.LabelEdit{
			Key: core.EditKey{
				Date:        req.Date,
				Description: req.Description,
				Amount:      req.Amount,
				Who:         req.Who,
			},
			Label: label,
		})
	}

	writeJSON(w, http.StatusOK, labelEditResponse{Matched: s.session.ApplyEdits(edits)})
}

// handleCategoryLabel sets one label across every transaction of a category.
func (s *Server) handleCategoryLabel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req categoryLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	label, err := core.ParseLabel(req.Label)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, labelEditResponse{Matched: s.session.ApplyCategoryLabel(req.Category, label)})
}
