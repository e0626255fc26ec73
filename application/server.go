package application

import (
	"context"

	rbac "github.com/paulvitic/rbac-admin"
	"github.com/paulvitic/rbac-admin/config"
	"github.com/paulvitic/rbac-admin/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Dashboard serves one session over HTTP.
type Dashboard struct {
	session    *Context
	httpServer *http.Server
	logger     *rbac.Logger
}

type Option func(*options)

type options struct {
	service rbac.UserService
}

// WithService replaces the simulated user service.
func WithService(service rbac.UserService) Option {
	return func(o *options) {
		o.service = service
	}
}

func NewDashboard(cfg config.Dashboard, logger *rbac.Logger, opts ...Option) *Dashboard {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	session := NewContext(cfg, logger, o.service)
	httpServer := http.NewServer(cfg.Addr(), logger).WithEndpoints(session.Endpoints()...)
	if cfg.Metrics.Enabled {
		httpServer.WithHandler(cfg.Metrics.Path, promhttp.HandlerFor(session.Registry(), promhttp.HandlerOpts{}))
	}

	return &Dashboard{
		session:    session,
		httpServer: httpServer,
		logger:     logger,
	}
}

func (d *Dashboard) Session() *Context {
	return d.session
}

func (d *Dashboard) HttpServer() *http.Server {
	return d.httpServer
}

// Run serves until ctx is done or the server fails. Event streams are closed
// before the server shuts down so Stop does not wait on them.
func (d *Dashboard) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(d.httpServer.Start)
	g.Go(func() error {
		<-ctx.Done()
		d.logger.Info("shutting down session %s", d.session.Coordinator().SessionID())
		d.session.Close()
		return d.httpServer.Stop(context.Background())
	})
	return g.Wait()
}

func (d *Dashboard) Close() {
	d.session.Close()
}
