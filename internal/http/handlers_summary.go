package http

import (
	"net/http"
	"time"

	"paytrack/internal/core"
)

// queryDate reads an optional ?date= parameter, defaulting to today when
// absent.
func queryDate(r *http.Request) (core.Date, error) {
	if v := r.URL.Query().Get("date"); v != "" {
		return core.ParseDate(v)
	}
	return core.DateOf(time.Now().UTC()), nil
}

func (s *Server) handleFortnightSummary(w http.ResponseWriter, r *http.Request) {
	today, err := queryDate(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	key := s.summary.Period(today).Start.String()
	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	sum, err := s.summary.Fortnight(r.Context(), today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.summaryCache.Set(key, sum)
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	today, err := queryDate(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	key := today.String()
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	st, err := s.summary.Stats(r.Context(), today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Set(key, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.summary.Weekly(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewBuckets(buckets))
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.summary.Monthly(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewBuckets(buckets))
}
