// Package api implements the REST façade: a thin net/http wrapper over
// the device registry and its live device manager. No device-specific
// business logic lives here beyond JSON marshaling and dispatch by tag.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nullsink/vhid/apitypes"
	apierror "github.com/nullsink/vhid/internal/server/api/error"
)

// Server is the REST façade's HTTP server.
type Server struct {
	addr    string
	ln      net.Listener
	httpSrv *http.Server
	logger  *slog.Logger
	mgr     *Manager
	config  *ServerConfig
}

// New creates a REST API server bound to a fresh device Manager.
func New(config ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := config
	s := &Server{addr: cfg.Addr, logger: logger, mgr: NewManager(), config: &cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1.0/ping", s.handlePing)
	mux.HandleFunc("GET /api/v1.0/devices", s.handleList)
	mux.HandleFunc("POST /api/v1.0/devices/add", s.handleAdd)
	mux.HandleFunc("DELETE /api/v1.0/devices/{id}", s.handleRemove)
	mux.HandleFunc("POST /api/v1.0/devices/{type}/{id}/{op}", s.handleOperation)

	s.httpSrv = &http.Server{
		Handler:      s.recover(s.logRequests(mux)),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

// Addr returns the address the server is (or will be) listening on.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig { return s.config }

// Manager returns the live device manager, exposed for the C ABI shim
// and tests to share the same device set as the REST façade.
func (s *Server) Manager() *Manager { return s.mgr }

// Start binds the listener and serves requests in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.addr = ln.Addr().String()
	s.config.Addr = s.addr
	s.logger.Info("REST API listening", "addr", s.addr)

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("REST API server stopped", "error", err)
		}
	}()
	return nil
}

// Close shuts the server down, closing every live device.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpSrv.Shutdown(ctx)
	s.mgr.CloseAll()
	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("api request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// recover turns a panicking handler into an HTTP 500, per the error
// handling design's "caught via recover() middleware" requirement.
func (s *Server) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("api handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, apierror.ErrInternal(fmt.Sprintf("internal error: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := apierror.WrapError(err)
	writeJSON(w, apiErr.Status, apiErr)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apitypes.PingResponse{Server: "vhid", Version: "1.0"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apitypes.DevicesListResponse{Devices: s.mgr.List()})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req apitypes.DeviceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.ErrBadRequest("invalid request body: "+err.Error()))
		return
	}
	dev, err := s.mgr.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dev)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.mgr.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apitypes.DeviceRemoveResponse{Success: true})
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	op := r.PathValue("op")

	body := map[string]any{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierror.ErrBadRequest("invalid request body: "+err.Error()))
			return
		}
	}

	result, err := s.mgr.Operation(id, op, body)
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, apitypes.DeviceRemoveResponse{Success: true})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
