// file: internal/gateway/server.go

package gateway

import (
	"context"
	"net/http"

	"github.com/pjkundert/hp-admin-crypto/config"
	"github.com/pjkundert/hp-admin-crypto/internal/logger"
)

// Server runs the verification HTTP listener. Verification is synchronous and
// CPU-bound, so each decision runs on the connection's own goroutine; the
// net/http dispatcher provides all the concurrency this core needs.
type Server struct {
	logger     *logger.Logger
	httpServer *http.Server
	serverCfg  *config.ServerConfig
}

// NewServer creates the verification server around a handler.
func NewServer(log *logger.Logger, handler http.Handler, serverCfg *config.ServerConfig) *Server {
	// Route everything to the gateway: unknown paths must produce the same
	// deny decision as a failed verification, so no mux-level 404 exists.
	mux := http.NewServeMux()
	mux.Handle("/", handler)

	return &Server{
		logger:    log,
		serverCfg: serverCfg,
		httpServer: &http.Server{
			Addr:           serverCfg.Address,
			Handler:        mux,
			ReadTimeout:    serverCfg.ReadTimeout,
			WriteTimeout:   serverCfg.WriteTimeout,
			IdleTimeout:    serverCfg.IdleTimeout,
			MaxHeaderBytes: serverCfg.MaxHeaderBytes,
		},
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		s.logger.Info("starting verification server",
			"address", s.serverCfg.Address)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("verification server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server, letting in-flight decisions
// finish. Abandoned verifications have no side effects to roll back.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping verification server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to gracefully shutdown verification server", "error", err)
		return err
	}

	s.logger.Info("verification server stopped")
	return nil
}
