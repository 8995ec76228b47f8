package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/storefront/storefront-backend/api/middleware"
	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/utils"
)

func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)
	allowedOrigins := []string{}

	if conf.FrontendUrl != "" {
		parsedUrl, err := url.Parse(conf.FrontendUrl)
		switch {
		case err != nil:
			logger.Error("Failed to parse FRONTEND_URL for CORS. Browser requests from this url will be rejected.",
				"url", conf.FrontendUrl)
		case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
			logger.Error(
				fmt.Sprintf("The url %s does not contain a scheme (http or https), so it cannot be used for CORS.",
					conf.FrontendUrl),
				"url", conf.FrontendUrl)
		default:
			u := url.URL{Scheme: parsedUrl.Scheme, Host: parsedUrl.Host}
			allowedOrigins = append(allowedOrigins, u.String())
		}
	}

	if conf.Env == "development" {
		allowedOrigins = append(allowedOrigins,
			"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5500")
	}

	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "baggage", "sentry-trace", utils.RequestIdHeader},
		ExposeHeaders:    []string{"Retry-After", utils.RequestIdHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouterMiddlewares(
	ctx context.Context,
	conf Configuration,
	telemetryRessources infra.TelemetryRessources,
	cache repositories.Cache,
) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(ctx, conf)))
	r.Use(limits.RequestSizeLimiter(maxBodySize))
	r.Use(middleware.NewLogging(logger,
		middleware.WithSuccessLevel(conf.RequestLoggingLevel),
		middleware.WithIgnorePath("/liveness", "/metrics"),
	))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(otelgin.Middleware(
		conf.AppName,
		otelgin.WithTracerProvider(telemetryRessources.TracerProvider),
		otelgin.WithPropagators(telemetryRessources.TextMapPropagator),
	))
	r.Use(utils.StoreOpenTelemetryTracerInContextMiddleware(telemetryRessources.Tracer))
	if conf.EnablePrometheus {
		r.Use(middleware.NewMetrics())
	}
	r.Use(middleware.NewRateLimiter(cache, conf.RateLimit.MaxRequests, conf.RateLimit.Window).Handler)

	return r
}
