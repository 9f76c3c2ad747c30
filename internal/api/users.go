package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/service"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TariffID int64  `json:"tariff_id"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleBusiness
	}

	user, err := s.users.Create(r.Context(), req.Name, req.Phone, req.Password, role, req.TariffID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
	TariffID *int64  `json:"tariff_id"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	update := service.UserUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		TariffID: req.TariffID,
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		update.Status = &status
	}

	user, err := s.users.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
