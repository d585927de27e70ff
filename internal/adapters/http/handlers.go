// Package httpadapter exposes the use cases as a JSON API.
package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/generator"
	"svw.info/cheryl/internal/solver"
	"svw.info/cheryl/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/count", h.handleCount)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/trace", h.handleTrace)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// Error kinds let clients tell failures apart without parsing messages.
const (
	kindBadRequest  = "bad_request"
	kindInvalid     = "invalid_puzzle"
	kindNoSolution  = "no_solution"
	kindMultiple    = "multiple_solutions"
	kindNoGame      = "no_game_found"
	kindNotFound    = "not_found"
	kindInternal    = "internal"
	contentTypeJSON = "application/json; charset=utf-8"
)

type errorBody struct {
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
	// Count is the number of surviving candidates for multiple_solutions.
	Count int `json:"count,omitempty"`
	// Counts is the solution-count histogram for no_game_found.
	Counts map[int]int `json:"counts,omitempty"`
}

// classify maps an engine error to an HTTP status and error body.
func classify(err error) (int, errorBody) {
	body := errorBody{Error: err.Error()}
	var multi *solver.MultipleSolutionsError
	var noGame *generator.NoGameFoundError
	switch {
	case errors.As(err, &multi):
		body.Kind, body.Count = kindMultiple, multi.Count
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, solver.ErrNoSolution):
		body.Kind = kindNoSolution
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &noGame):
		body.Kind, body.Counts = kindNoGame, noGame.Counts
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, solver.ErrConfig),
		errors.Is(err, solver.ErrInvalidStatement),
		errors.Is(err, generator.ErrTooManyTries),
		errors.Is(err, generator.ErrBadRequest):
		body.Kind = kindInvalid
		return http.StatusBadRequest, body
	case errors.Is(err, os.ErrNotExist):
		body.Kind = kindNotFound
		return http.StatusNotFound, body
	}
	body.Kind = kindInternal
	return http.StatusInternalServerError, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	writeJSON(w, status, body)
}

// allow rejects anything but method; it reports whether to continue.
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Kind: kindBadRequest})
	return false
}

// decode reads the JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON: " + err.Error(), Kind: kindBadRequest})
	return false
}

// ---- Solve / Count ----

type solveResp struct {
	Solution    domain.Candidate `json:"solution"`
	DurationMs  int64            `json:"durationMs"`
	Evaluations int              `json:"evaluations"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Puzzle
	if !decode(w, r, &p) {
		return
	}
	sol, st, err := h.UC.Solve(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResp{Solution: sol, DurationMs: st.Duration.Milliseconds(), Evaluations: st.Evaluations})
}

type countResp struct {
	Count       int   `json:"count"`
	DurationMs  int64 `json:"durationMs"`
	Evaluations int   `json:"evaluations"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Puzzle
	if !decode(w, r, &p) {
		return
	}
	n, st, err := h.UC.Count(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResp{Count: n, DurationMs: st.Duration.Milliseconds(), Evaluations: st.Evaluations})
}

// ---- Generate ----

type generateResp struct {
	Puzzle      *domain.Puzzle `json:"puzzle"`
	Seed        int64          `json:"seed"`
	DurationMs  int64          `json:"durationMs"`
	Evaluations int            `json:"evaluations"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req domain.GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	p, st, err := h.UC.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Puzzle:      p,
		Seed:        p.Seed,
		DurationMs:  st.Duration.Milliseconds(),
		Evaluations: st.Evaluations,
	})
}

// ---- Validate / Trace ----

type validateResp struct {
	OK       bool             `json:"ok"`
	Problems []domain.Problem `json:"problems,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Puzzle
	if !decode(w, r, &p) {
		return
	}
	ok, problems, err := h.UC.Validate(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Problems: problems})
}

type traceResp struct {
	Steps []domain.Step `json:"steps"`
	errorBody
}

// handleTrace returns the completed steps even when a statement leaves
// nothing, alongside the error kind.
func (h *Handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Puzzle
	if !decode(w, r, &p) {
		return
	}
	steps, err := h.UC.Trace(r.Context(), &p)
	if steps == nil {
		steps = []domain.Step{}
	}
	if err != nil {
		status, body := classify(err)
		writeJSON(w, status, traceResp{Steps: steps, errorBody: body})
		return
	}
	writeJSON(w, http.StatusOK, traceResp{Steps: steps})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var p domain.Puzzle
	if !decode(w, r, &p) {
		return
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req loadReq
	if !decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing id", Kind: kindBadRequest})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ps == nil {
		ps = []domain.PuzzleMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}
