package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"StockSandbox/internal/collector"
	"StockSandbox/internal/model"
	"StockSandbox/internal/recorder"
	"StockSandbox/internal/strategy"
	"StockSandbox/internal/synth"
)

type seriesResponse struct {
	*model.SeriesResult
	Trend model.TrendSignal `json:"trend"`
}

type periodResponse struct {
	ID    model.Window `json:"id"`
	Days  int          `json:"days"`
	Label string       `json:"label"`
}

// handleGetSeries handles GET /api/v1/series/{symbol}?period=1month&seed=N
func (s *Server) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	query := r.URL.Query()

	window := s.opts.DefaultWindow
	if p := query.Get("period"); p != "" {
		parsed, err := model.ParseWindow(p)
		if err != nil {
			s.writeInvalidWindow(w, err)
			return
		}
		window = parsed
	}

	col := s.collector
	if raw := query.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seed == 0 {
			s.writeError(w, http.StatusBadRequest, "seed must be a non-zero integer")
			return
		}
		col = collector.NewCollector(s.source.Seeded(seed), s.logger)
	}

	res, err := col.Collect(r.Context(), model.SeriesRequest{Symbol: symbol, Window: window})
	switch {
	case errors.Is(err, model.ErrInvalidWindow):
		s.writeInvalidWindow(w, err)
		return
	case errors.Is(err, synth.ErrInvalidSymbol):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("collect series")
		s.writeError(w, http.StatusInternalServerError, "failed to generate series")
		return
	}

	if err := s.recorder.RecordRun(recorder.NewSeriesRun(recorder.TriggerAPI, res)); err != nil {
		s.logger.Error().Err(err).Str("symbol", res.Symbol).Msg("record run")
	}
	s.writeJSON(w, http.StatusOK, seriesResponse{SeriesResult: res, Trend: strategy.Classify(res.Stats)})
}

// handleGetPeriods handles GET /api/v1/periods
func (s *Server) handleGetPeriods(w http.ResponseWriter, _ *http.Request) {
	out := make([]periodResponse, 0, len(model.Windows))
	for _, win := range model.Windows {
		days, _ := win.Days()
		out = append(out, periodResponse{ID: win, Days: days, Label: win.Label()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleGetSymbols handles GET /api/v1/symbols
func (s *Server) handleGetSymbols(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, model.ExampleSymbols)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeInvalidWindow(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":         err.Error(),
		"valid_periods": model.Windows,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
