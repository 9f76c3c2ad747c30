package api

import (
	"net/http"

	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

func (s *Server) handleListTariffs(w http.ResponseWriter, r *http.Request) {
	usage, err := s.tariffs.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

type tariffRequest struct {
	Name          string   `json:"name"`
	MonthlyPrice  int64    `json:"monthly_price"`
	MaxDebtors    int      `json:"max_debtors"`
	SMSPerMonth   int      `json:"sms_per_month"`
	ExportEnabled bool     `json:"export_enabled"`
	Features      []string `json:"features"`
}

func (req tariffRequest) toModel() *models.Tariff {
	return &models.Tariff{
		Name:          req.Name,
		MonthlyPrice:  req.MonthlyPrice,
		MaxDebtors:    req.MaxDebtors,
		SMSPerMonth:   req.SMSPerMonth,
		ExportEnabled: req.ExportEnabled,
		Features:      req.Features,
	}
}

func (s *Server) handleCreateTariff(w http.ResponseWriter, r *http.Request) {
	var req tariffRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	tariff := req.toModel()
	if err := s.tariffs.Create(r.Context(), tariff); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tariff)
}

func (s *Server) handleUpdateTariff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req tariffRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	tariff := req.toModel()
	tariff.ID = id
	if err := s.tariffs.Update(r.Context(), tariff); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tariff)
}
