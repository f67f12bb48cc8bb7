package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/report"
	"github.com/chargeplan/chargeplan/pkg/storage"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/google/uuid"
)

const maxProjectionNameLength = 200

func (s *Server) handleCreateProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if len(name) > maxProjectionNameLength {
		writeJSONError(w, "name is too long", http.StatusBadRequest)
		return
	}
	_, req, ok := readChargingRequest(w, r)
	if !ok {
		return
	}

	projection, err := s.controller.Project(ctx, req)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to calculate projection", slog.Any("error", err))
		writeJSONError(w, fmt.Sprintf("invalid charging request: %v", err), http.StatusBadRequest)
		return
	}

	req.ApplyDefaults()
	record := types.ProjectionRecord{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		Request:    req,
		Projection: projection,
	}
	if err := s.storage.SaveProjection(ctx, record); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save projection", slog.Any("error", err))
		writeJSONError(w, "failed to save projection", http.StatusInternalServerError)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "projection saved", slog.String("id", record.ID), slog.String("name", name))

	w.Header().Set("Location", "/api/projections/"+record.ID)
	writeJSON(w, record, http.StatusCreated)
}

func (s *Server) handleListProjections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeJSONError(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	summaries, err := s.storage.ListProjections(ctx, limit)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list projections", slog.Any("error", err))
		writeJSONError(w, "failed to list projections", http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []types.ProjectionSummary{}
	}
	writeJSON(w, summaries, http.StatusOK)
}

// loadProjection fetches the record named by the {id} path value, writing
// the error response itself when it fails.
func (s *Server) loadProjection(w http.ResponseWriter, r *http.Request) (types.ProjectionRecord, bool) {
	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSONError(w, "projection not found", http.StatusNotFound)
		return types.ProjectionRecord{}, false
	}
	record, err := s.storage.GetProjection(ctx, id)
	if errors.Is(err, storage.ErrProjectionNotFound) {
		writeJSONError(w, "projection not found", http.StatusNotFound)
		return types.ProjectionRecord{}, false
	}
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get projection", slog.String("id", id), slog.Any("error", err))
		writeJSONError(w, "failed to get projection", http.StatusInternalServerError)
		return types.ProjectionRecord{}, false
	}
	return record, true
}

func (s *Server) handleGetProjection(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadProjection(w, r)
	if !ok {
		return
	}
	// stored projections never change
	w.Header().Set("Cache-Control", "private, max-age=86400")
	writeJSON(w, record, http.StatusOK)
}

func (s *Server) handleExportProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(report.FormatXLSX)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, ok := s.loadProjection(w, r)
	if !ok {
		return
	}
	b, err := s.reports.Generate(record, format)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to generate report",
			slog.String("id", record.ID),
			slog.String("format", string(format)),
			slog.Any("error", err),
		)
		writeJSONError(w, "failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(record, format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		panic(http.ErrAbortHandler)
	}
}
