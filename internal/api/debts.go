package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qarzdaftar/qarzdaftar/internal/export"
	"github.com/qarzdaftar/qarzdaftar/internal/ledger"
	"github.com/qarzdaftar/qarzdaftar/internal/middleware"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
)

// handleListDebts serves one page of the owner's ledger.
// Query parameters: q (search), page, page_size.
func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	view, err := s.debts.List(r.Context(), ownerID, query, page, pageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type createDebtRequest struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Phone     string            `json:"phone"`
	DebtDate  string            `json:"debt_date"`
	Items     []models.DebtItem `json:"items"`
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	debt := &models.DebtRecord{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		DebtDate:  req.DebtDate,
		Items:     req.Items,
	}
	if err := s.debts.Create(r.Context(), middleware.GetUserID(r.Context()), debt); err != nil {
		s.writeError(w, err)
		return
	}

	debtsCreated.Inc()
	writeJSON(w, http.StatusCreated, debt)
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	debt, err := s.debts.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.debts.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setPaidRequest struct {
	Paid bool `json:"paid"`
}

func (s *Server) handleSetPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req setPaidRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	debt, err := s.debts.SetPaid(r.Context(), middleware.GetUserID(r.Context()), id, req.Paid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var item models.DebtItem
	if err := decodeJSON(r, &item); err != nil {
		s.writeError(w, err)
		return
	}

	debt, err := s.debts.AddItem(r.Context(), middleware.GetUserID(r.Context()), id, item)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

type updateItemRequest struct {
	Name  *string `json:"name"`
	Qty   *int    `json:"qty"`
	Price *int64  `json:"price"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	patch := ledger.ItemPatch{Name: req.Name, Qty: req.Qty, Price: req.Price}
	debt, err := s.debts.UpdateItem(r.Context(), middleware.GetUserID(r.Context()), id, idx, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	debt, err := s.debts.RemoveItem(r.Context(), middleware.GetUserID(r.Context()), id, idx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

// handleExportDebts streams the owner's filtered ledger as CSV.
func (s *Server) handleExportDebts(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	query := r.URL.Query().Get("q")

	rows, err := s.debts.Export(r.Context(), ownerID, query)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="qarzdaftar.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		s.logger.Error("CSV export failed", "owner_id", ownerID, "error", err)
		return
	}
	exportsGenerated.Inc()
}

// pathID parses an int64 path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, &ledger.ValidationError{Field: name, Reason: "must be a numeric id"}
	}
	return id, nil
}

// pathIndex parses the item index path parameter.
func pathIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		return 0, &ledger.ValidationError{Field: "idx", Reason: "must be a numeric index"}
	}
	return idx, nil
}
