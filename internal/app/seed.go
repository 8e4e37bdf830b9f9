package app

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/addressbook-backend/internal/platform/logger"
	"github.com/yungbote/addressbook-backend/internal/services"
)

type seedFile struct {
	Contacts []services.ContactInput `yaml:"contacts"`
}

// LoadSeed reads a YAML list of contacts:
//
//	contacts:
//	  - name: Alice Tan
//	    dateOfBirth: 05-01-1990
func LoadSeed(path string) ([]services.ContactInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f.Contacts, nil
}

// Seed creates each input through the service. It only runs against an empty
// store, so restarting with the same seed file adds nothing. Invalid entries
// are logged and skipped; a store failure stops the run.
func Seed(ctx context.Context, log *logger.Logger, contacts services.ContactService, inputs []services.ContactInput) (int, error) {
	page, err := contacts.List(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("seed: check existing contacts: %w", err)
	}
	if page.Total > 0 {
		log.Info("seed skipped, store not empty", "existing", page.Total)
		return 0, nil
	}

	created := 0
	for i, in := range inputs {
		c, fieldErrs, err := contacts.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("seed contact %d: %w", i, err)
		}
		if len(fieldErrs) > 0 {
			log.Warn("seed contact rejected", "index", i, "errors", fieldErrs.Error())
			continue
		}
		log.Debug("seed contact created", "contact_id", c.ID)
		created++
	}
	return created, nil
}
