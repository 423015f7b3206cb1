package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/geoprumo/route-service/internal/api/handler"
	"github.com/geoprumo/route-service/internal/api/middleware"
	"github.com/geoprumo/route-service/internal/core/ports"
	"github.com/geoprumo/route-service/internal/core/service"
	"github.com/geoprumo/route-service/internal/export"
	"github.com/geoprumo/route-service/internal/infrastructure/config"
	"github.com/geoprumo/route-service/internal/infrastructure/db/redis"
	"github.com/geoprumo/route-service/internal/infrastructure/http/handlers"
	"github.com/geoprumo/route-service/internal/infrastructure/ors"
	"github.com/geoprumo/route-service/internal/ingest"
	"github.com/geoprumo/route-service/internal/solver"
	"github.com/geoprumo/route-service/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case geocoding runs without a cache.
func NewRouter(cfg *config.Config, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(cfg.MaxBodySize))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "routing",
		Subsystem: "http",
		Skipper:   skipInfra,
	}))

	// --- Dependencies ---
	orsClient := ors.New(ors.Config{
		APIKey:              cfg.ORS.APIKey,
		BaseURL:             cfg.ORS.BaseURL,
		Profile:             cfg.ORS.Profile,
		Timeout:             cfg.ORS.Timeout,
		GeocodeTimeout:      cfg.ORS.GeocodeTimeout,
		AutocompleteTimeout: cfg.ORS.AutocompleteTimeout,
	}, nil, logger.Component(log, "ors"))

	ingestLog := logger.Component(log, "ingest")
	links := ingest.NewMapLinkResolver(ingest.MapLinkConfig{
		BaseURL: cfg.MyMaps.BaseURL,
		Timeout: cfg.MyMaps.Timeout,
	}, nil, ingestLog)
	engine := ingest.NewEngine(ingest.Config{Workers: cfg.Ingest.Workers}, links, ingestLog)
	tsp := solver.New(solver.Options{TimeLimit: cfg.Solver.TimeLimit, MaxNodes: cfg.Solver.MaxPoints})

	exportService := export.NewService(logger.Component(log, "export"))
	optimizer := service.NewRouteOptimizer(orsClient, tsp, logger.Component(log, "optimizer"))
	processService := service.NewProcessService(engine, optimizer, exportService, logger.Component(log, "process"))

	// A nil *redis.Client must not leak into the interfaces below.
	var (
		cache  ports.GeocodeCache
		pinger handlers.Pinger
	)
	if rdb != nil {
		cache = redis.NewGeocodeCache(rdb, cfg.Redis.TTL)
		pinger = rdb
	}
	geocodeService := service.NewGeocodeService(orsClient, cache, logger.Component(log, "geocode"))

	processHandler := handler.NewProcessHandler(processService)
	exportHandler := handler.NewExportHandler(exportService)
	geocodeHandler := handler.NewGeocodeHandler(geocodeService)

	// --- Health probes and tooling ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pinger, orsClient.Configured())

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: redis ping, ORS credential
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API v1 ---
	v1 := e.Group("/api/v1")

	v1.POST("/process/optimize", processHandler.Optimize)

	v1.POST("/export/google-maps-links", exportHandler.GoogleMapsLinks)
	v1.POST("/export/:format", exportHandler.Export)

	v1.GET("/geocode/search", geocodeHandler.Search)
	v1.GET("/geocode/autocomplete", geocodeHandler.Autocomplete)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	return e
}

// skipInfra keeps probes and tooling out of the request metrics.
func skipInfra(c echo.Context) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/health") || p == "/metrics" || strings.HasPrefix(p, "/swagger")
}
