package router

import (
	"net/http"
	"net/url"

	docs "github.com/fintrack/backend/api"
	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/controllers/healthz"
	"github.com/fintrack/backend/internal/controllers/root"
	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/controllers/version"
	"github.com/fintrack/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var Version = "0.0.0"

// Config sets up the router with all middlewares.
//
// The returned teardown function must be called when the router is not
// used anymore.
func Config(url *url.URL, cfg config.Server) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.NoMethod(func(c *gin.Context) {
		httputil.NewError(c, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	teardown := func() {}
	if cfg.EnableMetrics {
		err := registerPrometheusMetrics()
		if err != nil {
			return nil, teardown, err
		}

		teardown = func() {
			if !unregisterPrometheusMetrics() {
				log.Error().Msg("could not unregister all Prometheus metrics")
			}
		}

		r.Use(MetricsMiddleware())
	}

	// CORS settings
	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORSAllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", Version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "fintrack"
	docs.SwaggerInfo.Version = Version
	docs.SwaggerInfo.Description = "The backend for fintrack, a personal finance tracker with accounts, transactions, budgets and automatic categorization."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows to attach it to different paths.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup, cfg config.Config) {
	root.RegisterRoutes(group.Group(""))
	version.RegisterRoutes(group.Group("/version"), Version)
	healthz.RegisterRoutes(group.Group("/healthz"), co.DB)

	if cfg.Server.EnableMetrics {
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// pprof performance profiles
	if cfg.Server.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup. All resources are scoped to the owner of the token.
	v1Group := group.Group("/v1", auth.Middleware(cfg.Auth.Secret))
	v1.RegisterRootRoutes(v1Group.Group(""))

	co.RegisterAccountRoutes(v1Group.Group("/accounts"))
	co.RegisterCategoryRoutes(v1Group.Group("/categories"))
	co.RegisterTransactionRoutes(v1Group.Group("/transactions"))
	co.RegisterBudgetRoutes(v1Group.Group("/budgets"))
	co.RegisterMatchRuleRoutes(v1Group.Group("/match-rules"))
	co.RegisterDashboardRoutes(v1Group.Group("/dashboard"))
}
