package http

import "net/http"

func (s *Server) handleListWorkplaces(w http.ResponseWriter, r *http.Request) {
	list, err := s.workplaces.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewWorkplaces(list))
}

func (s *Server) handleCreateWorkplace(w http.ResponseWriter, r *http.Request) {
	var req workplaceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.workplaces.Create(r.Context(), req.toWorkplace(0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, viewWorkplace(created))
}

func (s *Server) handleGetWorkplace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	wp, err := s.workplaces.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewWorkplace(wp))
}

func (s *Server) handleUpdateWorkplace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req workplaceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.workplaces.Update(r.Context(), req.toWorkplace(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, viewWorkplace(updated))
}

func (s *Server) handleDeleteWorkplace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.workplaces.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusNoContent, nil)
}
