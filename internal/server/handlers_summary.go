package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seisan-app/seisan/internal/calculator"
)

type balanceResponse struct {
	ID           string   `json:"id"`
	CreditorID   int64    `json:"creditor_id"`
	LiquidatorID int64    `json:"liquidator_id"`
	TotalAmount  int64    `json:"total_amount"`
	ContentIDs   []string `json:"content_ids"`
}

type settleRequest struct {
	CreditorID   int64    `json:"creditor_id"`
	LiquidatorID int64    `json:"liquidator_id"`
	ContentIDs   []string `json:"content_ids"`
}

type settleResponse struct {
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	balances, err := s.settlements.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	out := make([]balanceResponse, len(balances))
	for i, b := range balances {
		out[i] = balanceResponse{
			ID:           b.ID,
			CreditorID:   b.CreditorID,
			LiquidatorID: b.LiquidatorID,
			TotalAmount:  b.TotalAmount,
			ContentIDs:   b.ContentIDs,
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.CreditorID == 0 || req.LiquidatorID == 0 || len(req.ContentIDs) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("creditor_id, liquidator_id and content_ids are required"))
		return
	}

	result, err := s.settlements.SettleBalance(r.Context(), calculator.BalanceEntry{
		CreditorID:   req.CreditorID,
		LiquidatorID: req.LiquidatorID,
		ContentIDs:   req.ContentIDs,
	})
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	resp := settleResponse{Updated: result.Updated, Skipped: result.Skipped, Failed: result.Failed}
	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
		if result.FirstErr != nil {
			resp.Error = result.FirstErr.Error()
		}
	}
	respondJSON(w, status, resp)
}
