// Package kernel assembles the gymcore HTTP handler: global middleware,
// operational endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/gymstack/gymcore/app/routes"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/metrics"
	"github.com/gymstack/gymcore/pkg/middleware"
	"github.com/gymstack/gymcore/pkg/reqid"
	"github.com/gymstack/gymcore/pkg/response"
	"github.com/gymstack/gymcore/pkg/router"
)

type HTTP struct {
	router *router.Router
}

// NewHTTP builds the router. Global middleware, outermost first:
//
//  1. metrics   - total latency including panics
//  2. Recovery  - turns panics into 500 "Server error"
//  3. reqid     - request id before anything logs
//  4. Logger    - request logger carrying request_id
//  5. CORS      - exposes the auth header to browsers
func NewHTTP(d routes.Deps) *HTTP {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(d.AuthHeader)))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", health(d))

	routes.RegisterAPI(r, d)

	return &HTTP{router: r}
}

func (k *HTTP) Handler() http.Handler { return k.router.Handler() }

// Router exposes the named-route registry for route:list.
func (k *HTTP) Router() *router.Router { return k.router }

func health(d routes.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := Ping(ctx, d); err != nil {
			logger.WithCtx(r.Context()).Warn("health check failed", "error", err)
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}

// Ping checks the database behind d. The gRPC health service uses it too.
func Ping(ctx context.Context, d routes.Deps) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
