package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hzfm/catalog"
	"hzfm/core/finder"
	"hzfm/logger"
	"hzfm/model"
	"hzfm/tuning"
)

// Input ranges and defaults of the tempo and frequency controls.
const (
	MinBPM     = 40.0
	MaxBPM     = 200.0
	DefaultBPM = 60.0
	MinHz      = 0.0
	MaxHz      = 50.0
	DefaultHz  = 7.83
)

// TrackFinder is the query surface the handlers depend on.
type TrackFinder interface {
	Tracks(ctx context.Context) ([]model.TrackRecord, error)
	Match(ctx context.Context, targetBpm, targetHz float64, kind model.MediaKind) (*model.MatchResponse, error)
	Recommend(ctx context.Context, bpm, hz float64, p tuning.Profile, kind model.MediaKind) (*model.Recommendation, error)
}

// APIHandler serves the JSON API.
type APIHandler struct {
	finder TrackFinder
}

func NewAPIHandler(f TrackFinder) *APIHandler {
	return &APIHandler{finder: f}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLoadError maps a catalog failure to the user-visible notice.
func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *catalog.FetchError
	if errors.As(err, &fe) {
		logger.Warn("metadata table unavailable",
			logger.String("path", r.URL.Path),
			logger.String("requestId", RequestIDFromContext(r.Context())),
			logger.ErrorField(err))
		writeError(w, http.StatusServiceUnavailable, model.NoDataNotice)
		return
	}
	logger.Error("request failed", logger.String("path", r.URL.Path), logger.ErrorField(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTracksHandler returns the whole metadata table.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.finder.Tracks(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

// MatchHandler filters tracks by ?bpm=&hz=&kind=.
func (h *APIHandler) MatchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	bpm, err := floatParam(q.Get("bpm"), "bpm", DefaultBPM, MinBPM, MaxBPM)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hz, err := floatParam(q.Get("hz"), "hz", DefaultHz, MinHz, MaxHz)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := kindParam(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.finder.Match(r.Context(), bpm, hz, kind)
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	logger.Debug("match evaluated",
		logger.Float64("bpm", bpm),
		logger.Float64("hz", hz),
		logger.Int("count", resp.Count))
	writeJSON(w, http.StatusOK, resp)
}

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	BPM     *float64       `json:"bpm"`
	Hz      *float64       `json:"hz"`
	Kind    string         `json:"kind"`
	Profile tuning.Profile `json:"profile"`
}

// RecommendHandler returns the track nearest to the profile-tuned targets.
func (h *APIHandler) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bpm, hz := DefaultBPM, DefaultHz
	if req.BPM != nil {
		bpm = *req.BPM
	}
	if req.Hz != nil {
		hz = *req.Hz
	}
	if err := checkRange("bpm", bpm, MinBPM, MaxBPM); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkRange("hz", hz, MinHz, MaxHz); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := kindParam(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.finder.Recommend(r.Context(), bpm, hz, req.Profile, kind)
	if errors.Is(err, finder.ErrNoTracks) {
		writeError(w, http.StatusNotFound, model.NoDataNotice)
		return
	}
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func floatParam(raw, name string, fallback, lo, hi float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, checkRange(name, v, lo, hi)
}

// checkRange enforces the input control range; NaN fails every comparison.
func checkRange(name string, v, lo, hi float64) error {
	if !(v >= lo && v <= hi) {
		return fmt.Errorf("%s must be between %g and %g", name, lo, hi)
	}
	return nil
}

func kindParam(raw string) (model.MediaKind, error) {
	if strings.TrimSpace(raw) == "" {
		return model.MediaAudio, nil
	}
	return model.ParseMediaKind(raw)
}
