package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seisan-app/seisan/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token  string         `json:"token"`
	Member memberResponse `json:"member"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Email == "" || req.Nickname == "" {
		respondError(w, http.StatusBadRequest, errors.New("email and nickname are required"))
		return
	}

	member, err := s.authenticator.Register(r.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	token, err := s.tokens.Generate(member)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{Token: token, Member: toMemberResponse(member)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	member, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	token, err := s.tokens.Generate(member)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, Member: toMemberResponse(member)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	member, err := s.store.GetMember(r.Context(), memberID)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, toMemberResponse(member))
}
