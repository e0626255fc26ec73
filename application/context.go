package application

import (
	rbac "github.com/paulvitic/rbac-admin"
	"github.com/paulvitic/rbac-admin/config"
	"github.com/paulvitic/rbac-admin/http"
	"github.com/paulvitic/rbac-admin/inMemory"
	"github.com/prometheus/client_golang/prometheus"
)

// Context is one dashboard session. It owns the coordinator and everything
// the coordinator reports to.
type Context struct {
	coordinator *rbac.Coordinator
	publisher   *inMemory.EventPublisher
	registry    *prometheus.Registry
	logger      *rbac.Logger
}

// NewContext creates a session on top of service. A nil service means the
// simulated one, seeded with the default users.
func NewContext(cfg config.Dashboard, logger *rbac.Logger, service rbac.UserService) *Context {
	if service == nil {
		service = inMemory.NewUserService(inMemory.WithServiceLogger(logger))
	}
	registry := prometheus.NewRegistry()
	publisher := inMemory.NewEventPublisher(cfg.Events.BufferSize)

	coordinator := rbac.NewCoordinator(service,
		rbac.WithLogger(logger),
		rbac.WithMetrics(rbac.NewMetrics(registry)),
		rbac.WithPublisher(publisher),
	)
	logger.Info("created session %s", coordinator.SessionID())

	return &Context{
		coordinator: coordinator,
		publisher:   publisher,
		registry:    registry,
		logger:      logger,
	}
}

func (c *Context) Coordinator() *rbac.Coordinator {
	return c.coordinator
}

func (c *Context) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Context) Endpoints() []http.Endpoint {
	return []http.Endpoint{
		http.NewUsersEndpoint(c.coordinator),
		http.NewUserEndpoint(c.coordinator),
		http.NewFetchEndpoint(c.coordinator),
		http.NewStateEndpoint(c.coordinator),
		http.NewEventsEndpoint(c.publisher, c.logger),
	}
}

// Close ends every open event stream of the session.
func (c *Context) Close() {
	c.publisher.Close()
}
