package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/log"
	"github.com/nullsink/vhid/internal/server/api"
	"github.com/nullsink/vhid/internal/uhid"
)

// Server is the Kong command that runs the REST API server over the
// device registry.
type Server struct {
	Api api.ServerConfig `embed:"" prefix:"api."`
}

// Run is called by Kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

// StartServer starts the REST API server and blocks until ctx is
// canceled, then tears every live device down.
func (s *Server) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if s.Api.Addr == "" {
		return fmt.Errorf("api.addr must be set (default :3242)")
	}

	logger.Info("Starting vhid server", "addr", s.Api.Addr)

	evdev.SetRawLogger(rawLogger)
	uhid.SetRawLogger(rawLogger)

	apiSrv := api.New(s.Api, logger)
	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down", "uptime_signal", time.Now().Format(time.RFC3339))
	return apiSrv.Close()
}
