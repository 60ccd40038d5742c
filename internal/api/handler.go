package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
)

// Server provides the local HTTP API used by the monitor process and otp-notify
type Server struct {
	notifyUC  *usecase.NotifyUsecase
	monitorUC *usecase.MonitorUsecase
	statusUC  *usecase.StatusUsecase

	server *http.Server
	port   int
}

// NewServer creates a new API server
func NewServer(notifyUC *usecase.NotifyUsecase, monitorUC *usecase.MonitorUsecase, statusUC *usecase.StatusUsecase, port int) *Server {
	return &Server{
		notifyUC:  notifyUC,
		monitorUC: monitorUC,
		statusUC:  statusUC,
		port:      port,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Outward notifications
	mux.HandleFunc("/api/notify/admin", s.handleNotifyAdmin)
	mux.HandleFunc("/api/notify/status", s.handleNotifyStatus)
	mux.HandleFunc("/api/notify/error", s.handleNotifyError)

	// Monitor push-backs
	mux.HandleFunc("/api/monitor/login", s.handleMonitorLogin)
	mux.HandleFunc("/api/monitor/fetch", s.handleMonitorFetch)
	mux.HandleFunc("/api/monitor/monitoring", s.handleMonitorMonitoring)
	mux.HandleFunc("/api/monitor/error", s.handleMonitorError)

	// Status
	mux.HandleFunc("/api/status", s.handleStatus)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("[API] Starting HTTP server on port %d\n", s.port)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the server port
func (s *Server) GetPort() int {
	return s.port
}

// ============ Notify Handlers ============

// AdminMessageRequest is the body of /api/notify/admin
type AdminMessageRequest struct {
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
	Silent    bool   `json:"silent"`
}

// StatusMessageRequest is the body of /api/notify/status
type StatusMessageRequest struct {
	Message string `json:"message"`
	IsError bool   `json:"is_error"`
}

// ErrorReportRequest is the body of /api/notify/error and /api/monitor/error
type ErrorReportRequest struct {
	Error   string `json:"error"`
	Context string `json:"context"`
}

func (s *Server) handleNotifyAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminMessageRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	mode := domain.ParseMode(req.ParseMode)
	if mode != domain.ParseModeNone && mode != domain.ParseModeMarkdownV2 {
		http.Error(w, "parse_mode must be empty or MarkdownV2", http.StatusBadRequest)
		return
	}

	s.writeBroadcast(w, s.notifyUC.SendAdminMessage(r.Context(), req.Text, mode, req.Silent))
}

func (s *Server) handleNotifyStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusMessageRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	s.writeBroadcast(w, s.notifyUC.SendStatusMessage(r.Context(), req.Message, req.IsError))
}

func (s *Server) handleNotifyError(w http.ResponseWriter, r *http.Request) {
	var req ErrorReportRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.Error == "" {
		http.Error(w, "error is required", http.StatusBadRequest)
		return
	}

	s.notifyUC.ReportError(r.Context(), errors.New(req.Error), req.Context)
	s.writeJSON(w, map[string]interface{}{"success": true})
}

// writeBroadcast maps a broadcast result to a response. Partial delivery is 502.
func (s *Server) writeBroadcast(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"success": true})
}

// ============ Monitor Handlers ============

// MonitorEventRequest is the body of /api/monitor/login and /api/monitor/fetch
type MonitorEventRequest struct {
	Time *time.Time `json:"time,omitempty"`
}

// MonitoringRequest is the body of /api/monitor/monitoring
type MonitoringRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleMonitorLogin(w http.ResponseWriter, r *http.Request) {
	var req MonitorEventRequest
	if !decodePost(w, r, &req) {
		return
	}
	s.monitorUC.OnLogin(req.at())
	s.writeJSON(w, map[string]interface{}{"success": true})
}

func (s *Server) handleMonitorFetch(w http.ResponseWriter, r *http.Request) {
	var req MonitorEventRequest
	if !decodePost(w, r, &req) {
		return
	}
	s.monitorUC.OnFetch(req.at())
	s.writeJSON(w, map[string]interface{}{"success": true})
}

func (s *Server) handleMonitorMonitoring(w http.ResponseWriter, r *http.Request) {
	var req MonitoringRequest
	if !decodePost(w, r, &req) {
		return
	}
	s.monitorUC.OnMonitoring(req.Active)
	fmt.Printf("[API] Monitoring set to %t\n", req.Active)
	s.writeJSON(w, map[string]interface{}{"success": true, "active": req.Active})
}

func (s *Server) handleMonitorError(w http.ResponseWriter, r *http.Request) {
	var req ErrorReportRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.Error == "" {
		http.Error(w, "error is required", http.StatusBadRequest)
		return
	}

	s.monitorUC.OnError(r.Context(), errors.New(req.Error), req.Context)
	s.writeJSON(w, map[string]interface{}{"success": true})
}

func (req MonitorEventRequest) at() time.Time {
	if req.Time == nil || req.Time.IsZero() {
		return time.Now()
	}
	return *req.Time
}

// ============ Status Handlers ============

// StatusResponse is the JSON form of a status snapshot
type StatusResponse struct {
	Monitoring bool       `json:"monitoring"`
	Uptime     string     `json:"uptime"`
	LastLogin  *time.Time `json:"last_login"`
	LastFetch  *time.Time `json:"last_fetch"`
	OTPCount   *int       `json:"otp_count"` // null when storage is unavailable
	Error      string     `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.statusUC.Snapshot(r.Context())
	resp := StatusResponse{
		Monitoring: snap.Monitoring,
		Uptime:     snap.Uptime,
		LastLogin:  snap.LastLogin,
		LastFetch:  snap.LastFetch,
	}
	if snap.CountKnown {
		count := snap.OTPCount
		resp.OTPCount = &count
	}
	if err != nil {
		resp.Error = err.Error()
	}
	s.writeJSON(w, resp)
}

// ============ Helpers ============

// decodePost checks the method and decodes the JSON body into v.
// An empty body leaves v at its zero value.
func decodePost(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
