package http

import (
	"log/slog"
	"net/http"

	"budgetdash/internal/core"
)

// handleDataset returns the whole snapshot: summaries, transactions,
// matrix, error ledger and load timestamp.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot().Summary)
}

// handleTransactions returns the corpus, optionally filtered by ?month=.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	txns := s.session.Snapshot().Transactions
	if month := r.URL.Query().Get("month"); month != "" {
		filtered := make([]core.Transaction, 0, len(txns))
		for _, tx := range txns {
			if tx.Month == month {
				filtered = append(filtered, tx)
			}
		}
		txns = filtered
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot().Matrix)
}

// handleErrors returns the ingestion error ledger. An empty ledger is a
// healthy batch, not a 404.
func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot().Errors)
}

// handleRefresh triggers a full ingestion pass. Concurrent refreshes are
// coalesced by the session.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ds := s.session.Reload(r.Context())
	slog.InfoContext(r.Context(), "Refresh completed",
		"months", len(ds.Summary),
		"transactions", len(ds.Transactions),
		"errors", len(ds.Errors))
	writeJSON(w, http.StatusOK, map[string]any{
		"months":       len(ds.Summary),
		"transactions": len(ds.Transactions),
		"errors":       ds.Errors,
	})
}
