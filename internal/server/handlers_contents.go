package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seisan-app/seisan/internal/models"
	"github.com/seisan-app/seisan/internal/service"
)

type memberResponse struct {
	ID       int64  `json:"member_id"`
	Slug     string `json:"member_slug,omitempty"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{ID: m.ID, Slug: m.Slug, Nickname: m.Nickname, Email: m.Email}
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	out := make([]memberResponse, len(members))
	for i, m := range members {
		out[i] = toMemberResponse(m)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if category.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("category name is required"))
		return
	}
	if err := s.store.CreateCategory(r.Context(), &category); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// contentRequest is the submission shape used by the browser client: the
// content's scalar fields plus the split table flattened into parallel
// sequences. The paid flags and the finished field tolerate every shape
// the upstream store produces (raw flag or labeled object).
type contentRequest struct {
	Subject    string `json:"subject"`
	Amount     string `json:"amount"`
	Purpose    string `json:"purpose"`
	Ymd        string `json:"ymd"`
	CategoryID int64  `json:"category_id"`
	CreditorID int64  `json:"creditor_id"`

	Payers   []int64             `json:"payer"`
	Rates    []string            `json:"rate"`
	Payments []string            `json:"payment"`
	Paid     []models.PaidStatus `json:"paid"`
}

func (req contentRequest) submission() service.ContentSubmission {
	paid := make([]bool, len(req.Paid))
	for i, p := range req.Paid {
		paid[i] = p.Flag()
	}
	return service.ContentSubmission{
		Subject:    req.Subject,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
		Ymd:        req.Ymd,
		CategoryID: req.CategoryID,
		CreditorID: req.CreditorID,
		Payers:     req.Payers,
		Rates:      req.Rates,
		Payments:   req.Payments,
		Paid:       paid,
	}
}

// liquidationRequest is the minimal settle payload: the recomputed
// finished flag plus one paid flag per stored row, nothing else.
type liquidationRequest struct {
	Finished models.PaidStatus   `json:"finished"`
	Paid     []models.PaidStatus `json:"paid"`
}

type liquidationEntryResponse struct {
	PayerID int64             `json:"payer_id"`
	Rate    string            `json:"rate"`
	Payment string            `json:"payment"`
	Paid    models.PaidStatus `json:"paid"`
}

type contentResponse struct {
	ID          string                     `json:"id"`
	Subject     string                     `json:"subject"`
	Amount      string                     `json:"amount"`
	Purpose     string                     `json:"purpose,omitempty"`
	Ymd         string                     `json:"ymd"`
	CategoryID  int64                      `json:"category_id"`
	CreditorID  int64                      `json:"creditor_id"`
	Liquidation []liquidationEntryResponse `json:"liquidation"`
	Finished    models.PaidStatus          `json:"finished"`
	CreatedAt   int64                      `json:"created_at,omitempty"`
	UpdatedAt   int64                      `json:"updated_at,omitempty"`
}

func toContentResponse(c *models.Content) contentResponse {
	liquidation := make([]liquidationEntryResponse, len(c.Liquidation))
	for i, e := range c.Liquidation {
		liquidation[i] = liquidationEntryResponse{
			PayerID: e.PayerID,
			Rate:    e.Rate,
			Payment: e.Payment,
			Paid:    models.PaidFlag(e.Paid),
		}
	}
	return contentResponse{
		ID:          c.ID,
		Subject:     c.Subject,
		Amount:      c.Amount,
		Purpose:     c.Purpose,
		Ymd:         c.Ymd,
		CategoryID:  c.CategoryID,
		CreditorID:  c.CreditorID,
		Liquidation: liquidation,
		Finished:    models.PaidFlag(c.Finished),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func filterFromQuery(r *http.Request) models.Filter {
	if v := r.URL.Query().Get("filter"); v != "" {
		return models.Filter(v)
	}
	return models.FilterUnpaid
}

func (s *Server) handleListContents(w http.ResponseWriter, r *http.Request) {
	contents, err := s.contents.List(r.Context(), filterFromQuery(r))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	out := make([]contentResponse, len(contents))
	for i, c := range contents {
		out[i] = toContentResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.contents.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, toContentResponse(content))
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	content, err := s.contents.Create(r.Context(), req.submission())
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusCreated, toContentResponse(content))
}

// handleUpdateContent accepts either a full submission or a
// liquidation-only payload. A body without payer rows is treated as the
// latter: only the paid flags change, everything else stays as stored.
func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	var req contentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if len(req.Payers) == 0 {
		var liq liquidationRequest
		if err := json.Unmarshal(raw, &liq); err != nil || len(liq.Paid) == 0 {
			respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		paid := make([]bool, len(liq.Paid))
		for i, p := range liq.Paid {
			paid[i] = p.Flag()
		}
		content, err := s.contents.ApplyLiquidation(r.Context(), id, paid)
		if err != nil {
			respondError(w, statusFor(err), err)
			return
		}
		respondJSON(w, http.StatusOK, toContentResponse(content))
		return
	}

	content, err := s.contents.Update(r.Context(), id, req.submission())
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, toContentResponse(content))
}
