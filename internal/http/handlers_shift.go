package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/core"
	"paytrack/internal/export"
)

// shiftFilterFromQuery parses the optional from, to and workplace_id query
// parameters into a filter.
func shiftFilterFromQuery(r *http.Request) (core.ShiftFilter, error) {
	var f core.ShiftFilter
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
		f.From = d
	}
	if v := q.Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		f.To = d
	}
	if v := q.Get("workplace_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("invalid workplace_id %q", v)
		}
		f.WorkplaceID = id
	}
	return f, nil
}

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilterFromQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	list, err := s.shifts.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewShifts(list))
}

func (s *Server) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.shifts.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, viewShift(created))
}

func (s *Server) handleGetShift(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sh, err := s.shifts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewShift(sh))
}

func (s *Server) handleUpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req shiftRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.shifts.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, viewShift(updated))
}

func (s *Server) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.shifts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusNoContent, nil)
}

// handleExportShifts streams the filtered shifts as a CSV download.
func (s *Server) handleExportShifts(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilterFromQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	list, err := s.shifts.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("shifts-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteShiftsCSV(w, list); err != nil {
		writeError(w, r, err)
	}
}
