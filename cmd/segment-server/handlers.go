package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/stats"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

// server wires the compiler and the warehouse store to the HTTP surface.
type server struct {
	logger   *slog.Logger
	compiler *segment.Compiler
	store    *warehouse.Store
	db       *sql.DB
	dataDir  string
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /segments", s.handleCompileSegment)
	mux.HandleFunc("GET /segments/export", s.handleExportSegment)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}

type compileRequest struct {
	Prompt string `json:"prompt"`
}

type compileResponse struct {
	SegmentID  string               `json:"segment_id"`
	Conditions []string             `json:"conditions"`
	Count      int                  `json:"count"`
	Summary    stats.SegmentSummary `json:"summary"`
	Customers  []models.Customer    `json:"customers"`
}

func (s *server) handleCompileSegment(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ds := s.store.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, "warehouse not loaded")
		return
	}

	seg := s.compiler.Compile(req.Prompt, ds.Customers, ds.Bookings)

	s.logger.InfoContext(r.Context(), "compiled segment",
		slog.String("segment_id", seg.ID),
		slog.Int("count", len(seg.Customers)),
		slog.Any("conditions", seg.Conditions))

	respondJSON(w, http.StatusOK, compileResponse{
		SegmentID:  seg.ID,
		Conditions: seg.Conditions,
		Count:      len(seg.Customers),
		Summary:    stats.Summarize(seg),
		Customers:  seg.Customers,
	})
}

func (s *server) handleExportSegment(w http.ResponseWriter, r *http.Request) {
	prompt := r.URL.Query().Get("prompt")

	ds := s.store.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, "warehouse not loaded")
		return
	}

	seg := s.compiler.Compile(prompt, ds.Customers, ds.Bookings)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "segment_"+seg.ID+".csv"))
	if err := segment.WriteCSV(w, seg); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to write segment csv",
			slog.String("segment_id", seg.ID),
			slog.Any("error", err))
	}
}

type statsResponse struct {
	Customers stats.CustomerStats `json:"customers"`
	Bookings  *stats.BookingStats `json:"bookings,omitempty"`
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, "warehouse not loaded")
		return
	}

	resp := statsResponse{Customers: stats.Customers(ds.Customers)}

	bookingPath := filepath.Join(s.dataDir, warehouse.BookingFile)
	if _, err := os.Stat(bookingPath); err == nil {
		bs, err := stats.Bookings(r.Context(), s.db, bookingPath)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "failed to aggregate bookings", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "failed to aggregate bookings")
			return
		}
		resp.Bookings = &bs
	}

	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
