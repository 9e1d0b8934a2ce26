package http

import (
	"net/http"

	"paytrack/internal/core"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := s.expenses.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewExpenses(list))
}

type categoryTotalView struct {
	Category string     `json:"category"`
	Total    core.Money `json:"total"`
	Count    int        `json:"count"`
}

// handleExpenseSummary reports per-category totals plus the recurring amount
// every fortnight carries.
func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	breakdown, recurring, err := s.expenses.Breakdown(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories := make([]categoryTotalView, len(breakdown))
	for i, c := range breakdown {
		categories[i] = categoryTotalView{Category: c.Category, Total: c.Total, Count: c.Count}
	}
	writeJSON(w, http.StatusOK, struct {
		Categories     []categoryTotalView `json:"categories"`
		RecurringTotal core.Money          `json:"recurring_total"`
	}{categories, recurring})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toExpense(0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, viewExpense(created))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := s.expenses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewExpense(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req expenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := req.toExpense(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.expenses.Update(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, viewExpense(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusNoContent, nil)
}
