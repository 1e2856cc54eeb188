// Package profiler exposes net/http/pprof on a loopback port so a dialog can
// be profiled while it waits for a touch.
package profiler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// startGrace is how long Start waits for Serve to fail before assuming the
// server is up.
const startGrace = 100 * time.Millisecond

type Server struct {
	port int
	srv  *http.Server
	ln   net.Listener
	log  zerolog.Logger
}

// New prepares a server for port. Port 0 lets the kernel choose.
func New(port int) *Server {
	return &Server{
		port: port,
		srv: &http.Server{
			Handler:           Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.With().Str("component", "profiler").Logger(),
	}
}

// Handler returns the mux with the pprof index, the named runtime profiles
// and the CPU, trace, cmdline and symbol endpoints.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start binds 127.0.0.1 and serves in the background. An error from Serve
// within the first moments is returned. Later failures are only logged.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port)))
	if err != nil {
		return err
	}
	s.ln = ln

	failed := make(chan error, 1)
	go func() {
		err := s.srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		s.log.Error().Err(err).Msg("profiler stopped")
		failed <- err
	}()

	select {
	case err := <-failed:
		return err
	case <-time.After(startGrace):
		s.log.Info().Str("addr", s.Addr()).Msg("profiler listening")
		return nil
	}
}

// Addr is the bound address, empty before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown stops the server, waiting for in-flight profiles until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ln == nil {
		return nil
	}
	s.log.Debug().Msg("profiler shutting down")
	return s.srv.Shutdown(ctx)
}
