// Package fiber serves the session contract and the dashboard over HTTP.
package fiber

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/dashboard"
	"github.com/lborres/kindercrew/pkg/metrics"
	"github.com/lborres/kindercrew/services"
)

const DefaultBasePath = "/api"

// Session is the collaborator contract the handlers drive.
type Session interface {
	State() core.SessionState
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, email, password, name string) bool
	Logout(ctx context.Context)
}

type Options struct {
	BasePath string
	// LoginRatePerMinute throttles login and register per client IP; zero disables it
	LoginRatePerMinute int
	// Gatherer enables GET /metrics
	Gatherer prometheus.Gatherer
	// Metrics, when set, counts response status codes
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

type Adapter struct {
	app     *fiber.App
	session Session
	board   *dashboard.Board
	opts    Options
	limiter *RateLimiter
	logger  *slog.Logger
}

func New(app *fiber.App, session Session, board *dashboard.Board, opts Options) *Adapter {
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	a := &Adapter{
		app:     app,
		session: session,
		board:   board,
		opts:    opts,
		logger:  opts.Logger.With(slog.String("component", "http")),
	}
	if opts.LoginRatePerMinute > 0 {
		cfg := PerMinute(opts.LoginRatePerMinute)
		cfg.Logger = opts.Logger
		a.limiter = NewRateLimiter(cfg)
	}
	return a
}

// RegisterRoutes binds every endpoint in registry to its handler. An
// operation without a handler is an error.
func (a *Adapter) RegisterRoutes(registry *services.EndpointRegistry) error {
	handlers := a.handlers()

	for _, ep := range registry.Endpoints() {
		h, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q (%s %s)", ep.Metadata.OperationID, ep.Method, ep.Path)
		}
		if a.limiter != nil && throttled(ep.Metadata.OperationID) {
			h = a.limiter.Wrap(h)
		}
		if ep.Protected {
			h = a.requireAuth(h)
		}
		if a.opts.Metrics != nil {
			h = countStatus(a.opts.Metrics, h)
		}
		a.app.Add([]string{ep.Method}, a.opts.BasePath+ep.Path, h)
	}

	if a.opts.Gatherer != nil {
		a.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(a.opts.Gatherer)))
	}
	return nil
}

// Close stops background work owned by the adapter.
func (a *Adapter) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

func throttled(operationID string) bool {
	return operationID == services.OpLogin || operationID == services.OpRegister
}

func (a *Adapter) handlers() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		services.OpGetSession:   a.getSession,
		services.OpLogin:        a.login,
		services.OpRegister:     a.register,
		services.OpLogout:       a.logout,
		services.OpListChildren: a.listChildren,
		services.OpAddChild:     a.addChild,
		services.OpScreenTime:   a.screenTime,
		services.OpGetFilters:   a.getFilters,
		services.OpPutFilters:   a.putFilters,
		services.OpListAlerts:   a.listAlerts,
		services.OpResolveAlert: a.resolveAlert,
		services.OpDismissAlert: a.dismissAlert,
		services.OpListReports:  a.listReports,
		services.OpSubmitReport: a.submitReport,
		services.OpUpvoteReport: a.upvoteReport,
	}
}
