// Package dashboard serves the persisted-state web view: a listing of stored
// scan reports, drill-down into findings, and a background scan trigger.
// It only ever reads ScanReport snapshots; aggregation happens in pkg/scan.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/user/secureflow/pkg/engine"
	"github.com/user/secureflow/pkg/scan"
	"github.com/user/secureflow/pkg/store"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Status tracks the one background scan the dashboard allows at a time.
type Status struct {
	Running  bool   `json:"running"`
	Progress string `json:"progress"`
	LastScan string `json:"last_scan,omitempty"`
}

type Server struct {
	store *store.Store
	log   *zap.SugaredLogger
	tmpl  *template.Template

	mu     sync.Mutex
	status Status
}

func NewServer(st *store.Store, log *zap.SugaredLogger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{store: st, log: log, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/api/reports", s.handleAPIReports)
	mux.HandleFunc("/api/reports/latest", s.handleAPILatest)
	mux.HandleFunc("/api/scan", s.handleAPIScan)
	mux.HandleFunc("/api/status", s.handleAPIStatus)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.log.Infof("Dashboard listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	entries, err := s.store.List()
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render(w, "index.html", map[string]interface{}{
		"Entries": entries,
		"Status":  s.currentStatus(),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	var report *engine.ScanReport
	var err error
	if id == "" {
		report, err = s.store.LoadLatest()
	} else {
		report, err = s.store.LoadByID(id)
	}
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render(w, "report.html", map[string]interface{}{
		"Report":     report,
		"Severities": engine.AllSeverities(),
	})
}

func (s *Server) handleAPIReports(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleAPILatest(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.LoadLatest()
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, report)
}

// handleAPIScan kicks off a background scan. Presentation stays responsive;
// clients poll /api/status.
func (s *Server) handleAPIScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Target   string `json:"target"`
		Scanners string `json:"scanners"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	if req.Target == "" {
		req.Target = "."
	}

	scanners, err := scan.ParseScanners(req.Scanners)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		writeJSONError(w, http.StatusConflict, fmt.Errorf("a scan is already running"))
		return
	}
	s.status = Status{Running: true, Progress: fmt.Sprintf("Scanning %s...", req.Target), LastScan: s.status.LastScan}
	s.mu.Unlock()

	go s.runScan(req.Target, scanners)

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, s.currentStatus())
}

func (s *Server) runScan(target string, scanners []engine.Scanner) {
	opts := scan.Options{Target: target, Scanners: scanners, Save: true}
	_, err := scan.Run(context.Background(), opts, s.store, s.log)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = false
	if err != nil {
		s.status.Progress = fmt.Sprintf("Scan failed: %v", err)
		return
	}
	s.status.Progress = "Scan complete"
	s.status.LastScan = time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.currentStatus())
}

func (s *Server) currentStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorw("Template render failed", "template", name, "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
