package http

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"bankapi/internal/core"
	"bankapi/internal/planfile"
)

func (s *Server) handleUserCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be an integer")
		return
	}

	views, err := s.credits.CreditStatusForUser(r.Context(), userID)
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user has no credits")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Credit status query failed", "user_id", userID, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleInsertPlans(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		writeError(w, http.StatusUnprocessableEntity, "upload an xlsx or xls file")
		return
	}

	rows, err := planfile.Decode(file)
	if errors.Is(err, core.ErrMalformedInput) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Plan file decode failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to decode plan file")
		return
	}

	inserted, err := s.plans.IngestPlans(r.Context(), rows)
	var validation *core.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":    "plan validation failed",
			"messages": validation.Messages,
		})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Plan ingestion failed", "filename", header.Filename, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"inserted": inserted})
}

func (s *Server) handleMonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "query parameter date is required, format 2022-02-22")
		return
	}
	onDate, err := core.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be formatted like 2022-02-22")
		return
	}

	performance, err := s.performance.MonthlyPerformance(r.Context(), onDate)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly performance query failed", "date", raw, "error", err)
		writeStoreError(w, err)
		return
	}
	if len(performance) == 0 {
		writeError(w, http.StatusNotFound, "no plans found for the requested month")
		return
	}

	writeJSON(w, http.StatusOK, performance)
}

func (s *Server) handleYearlyPerformance(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "query parameter year is required, format 2022")
		return
	}

	rollups, err := s.performance.YearlyPerformance(r.Context(), year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Yearly performance query failed", "year", year, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rollups)
}
