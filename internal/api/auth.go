package api

import (
	"net/http"

	"github.com/qarzdaftar/qarzdaftar/internal/middleware"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	user, token, err := s.auths.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auths.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
