package repos

import (
	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/repos/contact"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type ContactRepo = contact.ContactRepo

var ErrContactNotFound = contact.ErrContactNotFound

const ContactPageSize = contact.PageSize

func NewContactRepo(store kv.Store, baseLog *logger.Logger) ContactRepo {
	return contact.NewContactRepo(store, baseLog)
}
