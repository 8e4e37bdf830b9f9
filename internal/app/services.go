package app

import (
	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
	"github.com/yungbote/addressbook-backend/internal/services"
)

type Services struct {
	Contact services.ContactService
}

func wireServices(log *logger.Logger, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		Contact: services.NewContactService(log, reposet.Contact, services.WithMetrics(metrics)),
	}
}
