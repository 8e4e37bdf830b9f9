package app

import (
	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/repos"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type Repos struct {
	Contact repos.ContactRepo
}

func wireRepos(store kv.Store, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Contact: repos.NewContactRepo(store, log),
	}
}
