package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/addressbook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/addressbook-backend/internal/http/middleware"
	"github.com/yungbote/addressbook-backend/internal/http/views"
	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName    string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	ContactHandler    *httpH.ContactHandler
	ContactAPIHandler *httpH.ContactAPIHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.SetHTMLTemplate(tmpl)

	// Health stays outside the limiter so probes never see 429.
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Pages and API share one token bucket.
	limit := httpMW.RateLimit(cfg.Log, cfg.RateLimitRPS, cfg.RateLimitBurst)

	pages := r.Group("/", limit)
	if cfg.ContactHandler != nil {
		pages.GET("/", cfg.ContactHandler.ShowForm)
		pages.POST("/contact", cfg.ContactHandler.Create)
		pages.GET("/contact", cfg.ContactHandler.List)
		pages.GET("/contact/:contactId", cfg.ContactHandler.Show)
	}

	api := r.Group("/api", limit)
	{
		if cfg.ContactAPIHandler != nil {
			api.GET("/contacts", cfg.ContactAPIHandler.List)
			api.POST("/contacts", cfg.ContactAPIHandler.Create)
			api.GET("/contacts/:contactId", cfg.ContactAPIHandler.Get)
		}
	}

	return r, nil
}
