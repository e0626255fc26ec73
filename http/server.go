package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	rbac "github.com/paulvitic/rbac-admin"
)

// Server represents an HTTP server using Gorilla Mux
type Server struct {
	router *mux.Router
	srv    *http.Server
	logger *rbac.Logger
}

// NewServer creates a server listening on addr with the health check
// registered at "/".
func NewServer(addr string, logger *rbac.Logger) *Server {
	router := mux.NewRouter()
	s := &Server{
		router: router,
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
	s.registerHealthCheckEndpoint()
	return s
}

// WithEndpoints binds the handler methods of each endpoint
func (s *Server) WithEndpoints(endpoints ...Endpoint) *Server {
	for _, endpoint := range endpoints {
		BindEndpoint(endpoint, s.router)
		s.logger.Info("Registered endpoint %s", endpoint.Path())
	}
	return s
}

// WithHandler mounts a plain handler for GET requests on path.
func (s *Server) WithHandler(path string, handler http.Handler) *Server {
	s.router.Handle(path, handler).Methods(http.MethodGet)
	s.logger.Info("Registered handler %s", path)
	return s
}

// Start serves until Stop is called. It returns nil after a graceful stop.
func (s *Server) Start() error {
	s.logger.Info("Starting server on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on %s failed: %w", s.srv.Addr, err)
	}
	return nil
}

// Stop shuts the server down, waiting at most five seconds for open requests
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	s.logger.Info("Stopping server on %s", s.srv.Addr)
	return s.srv.Shutdown(ctx)
}

// Router returns the server's router
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) registerHealthCheckEndpoint() {
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Status: UP")
	}).Methods(http.MethodGet)
}
