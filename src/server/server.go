// Package server exposes the index catalog over HTTP, together with a small
// embedded UI.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/cli"
	"github.com/scarab-search/scarab/src/core"
	"github.com/scarab-search/scarab/src/index"
)

var log = logging.MustGetLogger("server")

// A Server serves search requests against the catalog.
type Server struct {
	config  *core.Configuration
	catalog *index.Catalog
	router  *mux.Router
	ln      net.Listener
	srv     *http.Server
}

// New sets up a server around the given catalog.
func New(config *core.Configuration, catalog *index.Catalog) *Server {
	s := &Server{config: config, catalog: catalog}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/indexes", s.handleListIndexes).Methods(http.MethodGet)
	r.HandleFunc("/indexes/{name}", s.handleIndexDetails).Methods(http.MethodGet)
	r.HandleFunc("/indexes/{name}/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(s.handleStatic).Methods(http.MethodGet)
	r.Use(logRequests)
	s.router = r
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the server's listener on the configured host and port.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address. Only valid after Listen has succeeded.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve runs the server on the bound listener until it's shut down.
func (s *Server) Serve() error {
	fmt.Printf("Server running on http://%s\n", s.ln.Addr())
	s.srv = &http.Server{
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout),
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout),
	}
	cli.AtExit(s.Shutdown)
	if err := s.srv.Serve(s.ln); err != http.ErrServerClosed {
		return err
	}
	fmt.Println("Server stopped gracefully")
	return nil
}

// Shutdown stops the server, draining in-flight requests for up to the
// configured timeout.
func (s *Server) Shutdown() {
	if s.srv == nil {
		return
	}
	log.Notice("Received shutdown signal, stopping server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Server.ShutdownTimeout))
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Warning("Error stopping server: %s", err)
	}
}
