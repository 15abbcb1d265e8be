package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/growthlab/diagnostic/internal/middleware"
	"github.com/growthlab/diagnostic/internal/services"
)

// Router wires the HTTP surface to the diagnostic services. User identity
// arrives as JWT claims attached by the auth middleware; the services only
// ever see it as an opaque string.
type Router struct {
	store       Store
	authSvc     *services.AuthService
	diagSvc     *services.DiagnosticService
	analyticSvc *services.AnalyticsService
	saveTimeout time.Duration
}

func NewRouter(store Store) *Router {
	return &Router{
		store:       store,
		authSvc:     services.NewAuthService(store, middleware.SignToken),
		diagSvc:     services.NewDiagnosticService(store),
		analyticSvc: services.NewAnalyticsService(store),
		saveTimeout: 10 * time.Second,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)         // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)               // POST
	mux.HandleFunc("/api/diagnostic/test", rt.handleTest)           // GET
	mux.HandleFunc("/api/diagnostic/results", rt.handleResults)     // POST submit, GET list
	mux.HandleFunc("/api/diagnostic/analytics", rt.handleAnalytics) // GET
	mux.HandleFunc("/api/diagnostic/export", rt.handleExport)       // GET
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.authSvc.Register(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.authSvc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID})
}

// GET /api/diagnostic/test — the assessment definition with its questions.
func (rt *Router) handleTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, rt.diagSvc.Test())
}

func (rt *Router) handleResults(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	switch r.Method {
	case http.MethodPost:
		rt.submitResult(w, r, uid)
	case http.MethodGet:
		results, err := rt.diagSvc.ResultsForUser(uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/diagnostic/results
// { test_id?: string, answers: [{question_id, value}] }
func (rt *Router) submitResult(w http.ResponseWriter, r *http.Request, uid string) {
	var req struct {
		TestID  string `json:"test_id"`
		Answers []struct {
			QuestionID string `json:"question_id"`
			Value      any    `json:"value"`
		} `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	collector := services.NewAnswerCollector(rt.diagSvc.Test())
	for _, a := range req.Answers {
		if err := collector.Record(a.QuestionID, a.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	result, err := rt.diagSvc.ComputeResult(uid, req.TestID, collector.Answers())
	if err != nil {
		writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), rt.saveTimeout)
	defer cancel()
	if err := rt.diagSvc.SaveResult(ctx, result); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/diagnostic/analytics — per-category trend over the caller's results.
func (rt *Router) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	summary, err := rt.analyticSvc.Summary(uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GET /api/diagnostic/export?format=answers|scores — CSV of the caller's
// results.
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	results, err := rt.diagSvc.ResultsForUser(uid)
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "answers"
	}
	var (
		b    []byte
		name string
	)
	switch format {
	case "answers":
		b, err = services.ExportAnswersCSV(results)
		name = "answers.csv"
	case "scores":
		b, err = services.ExportScoresCSV(results)
		name = "scores.csv"
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	_, _ = w.Write(b)
}
