package app

import (
	"github.com/yungbote/addressbook-backend/internal/data/kv"
	apphttp "github.com/yungbote/addressbook-backend/internal/http"
	httpH "github.com/yungbote/addressbook-backend/internal/http/handlers"
	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Contact    *httpH.ContactHandler
	ContactAPI *httpH.ContactAPIHandler
}

func wireHandlers(log *logger.Logger, svcs Services, store kv.Store) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(log, store),
		Contact:    httpH.NewContactHandler(log, svcs.Contact),
		ContactAPI: httpH.NewContactAPIHandler(log, svcs.Contact),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) (*apphttp.Server, error) {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(":"+cfg.Port, apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       serviceName,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		ContactHandler:    handlers.Contact,
		ContactAPIHandler: handlers.ContactAPI,
		HealthHandler:     handlers.Health,
	})
}
