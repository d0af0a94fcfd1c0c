// Package api is the JSON-over-HTTP surface the front end talks to.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/markd315/football-vibes-sub000/internal/engine"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rating"
	"github.com/markd315/football-vibes-sub000/internal/store"
)

const maxBody = 1 << 20

type playResp struct {
	engine.PlayResult
	Err string `json:"err,omitempty"`
}

type errResp struct {
	Err string `json:"err"`
}

type timeoutReq struct {
	Side string `json:"side"`
}

// Handler routes requests to one session. history may be nil when the
// configured store keeps no play log.
type Handler struct {
	session *engine.Session
	history store.Historian
	log     *logrus.Entry
}

func NewHandler(s *engine.Session, history store.Historian, log *logrus.Entry) *Handler {
	return &Handler{session: s, history: history, log: log}
}

// Routes returns the mux wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /play", h.handlePlay)
	mux.HandleFunc("GET /state", h.handleState)
	mux.HandleFunc("POST /timeout", h.handleTimeout)
	mux.HandleFunc("GET /roster/{side}", h.handleGetRoster)
	mux.HandleFunc("PUT /roster/{side}", h.handlePutRoster)
	mux.HandleFunc("GET /ratings", h.handleRatings)
	mux.HandleFunc("GET /history", h.handleHistory)
	mux.HandleFunc("POST /reset", h.handleReset)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "session": h.session.ID()})
	})
	return h.logRequests(mux)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var call engine.PlayCall
	if err := decodeBody(w, r, &call); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	res, err := h.session.Resolve(r.Context(), call)
	resp := playResp{PlayResult: res}
	code := http.StatusOK
	if err != nil {
		resp.Err = err.Error()
		code = statusFor(err)
	}
	writeJSON(w, code, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}

func (h *Handler) handleTimeout(w http.ResponseWriter, r *http.Request) {
	var req timeoutReq
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	side, err := game.ParseSide(req.Side)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	st, err := h.session.CallTimeout(r.Context(), side)
	if err != nil {
		writeJSON(w, statusFor(err), errResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	side, err := game.ParseSide(r.PathValue("side"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.session.Roster(side))
}

func (h *Handler) handlePutRoster(w http.ResponseWriter, r *http.Request) {
	side, err := game.ParseSide(r.PathValue("side"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	var roster rating.Roster
	if err := decodeBody(w, r, &roster); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	if err := h.session.SetRoster(side, &roster); err != nil {
		writeJSON(w, statusFor(err), errResp{Err: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRatings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side, err := game.ParseSide(q.Get("side"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	pt, err := game.ParsePlayType(q.Get("play-type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	ratings := h.session.Ratings(side, pt)
	if ratings == nil {
		ratings = []rating.Result{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusNotImplemented, errResp{Err: "configured store keeps no play history"})
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid limit"})
			return
		}
		limit = v
	}
	plays, err := h.history.History(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Err: err.Error()})
		return
	}
	if plays == nil {
		plays = []store.PlayRecord{}
	}
	writeJSON(w, http.StatusOK, plays)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := h.session.Reset(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownPlayType),
		errors.Is(err, game.ErrUnknownSide),
		errors.Is(err, rating.ErrIllegalAssignment):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoTimeouts):
		return http.StatusConflict
	case errors.Is(err, outcome.ErrProfileNotFound),
		errors.Is(err, outcome.ErrInvalidProfile):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.code,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
