package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/addressbook-backend/internal/data/repos"
	types "github.com/yungbote/addressbook-backend/internal/domain/contact"
	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/apierr"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

// ContactInput is a contact submission as typed by the user. DateOfBirth is
// MM-dd-yyyy.
type ContactInput struct {
	Name        string `form:"name" json:"name" yaml:"name"`
	Email       string `form:"email" json:"email" yaml:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" yaml:"phoneNumber"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" yaml:"dateOfBirth"`
}

// ContactPage is one list window. PrevIndex and NextIndex are -1 when there
// is no neighbouring window.
type ContactPage struct {
	Contacts   []*types.Contact `json:"contacts"`
	StartIndex int              `json:"startIndex"`
	PageSize   int              `json:"pageSize"`
	Total      int64            `json:"total"`
	PrevIndex  int              `json:"prevIndex"`
	NextIndex  int              `json:"nextIndex"`
}

func (p ContactPage) HasPrev() bool { return p.PrevIndex >= 0 }
func (p ContactPage) HasNext() bool { return p.NextIndex >= 0 }

type ContactService interface {
	NewDraft() *types.Contact
	Create(ctx context.Context, in ContactInput) (*types.Contact, types.FieldErrors, error)
	Get(ctx context.Context, id string) (*types.Contact, error)
	List(ctx context.Context, startIndex int) (ContactPage, error)
}

type contactService struct {
	log     *logger.Logger
	repo    repos.ContactRepo
	ids     types.IDGenerator
	metrics *observability.Metrics
	now     func() time.Time
}

type ContactServiceOption func(*contactService)

func WithIDGenerator(gen types.IDGenerator) ContactServiceOption {
	return func(s *contactService) {
		if gen != nil {
			s.ids = gen
		}
	}
}

func WithClock(now func() time.Time) ContactServiceOption {
	return func(s *contactService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *observability.Metrics) ContactServiceOption {
	return func(s *contactService) { s.metrics = m }
}

func NewContactService(baseLog *logger.Logger, repo repos.ContactRepo, opts ...ContactServiceOption) ContactService {
	s := &contactService{
		log:  baseLog.With("service", "ContactService"),
		repo: repo,
		ids:  types.DefaultIDGenerator,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *contactService) NewDraft() *types.Contact {
	return types.NewContactFrom(s.ids)
}

// Create validates the submission and saves it. Field errors come back with
// the unsaved draft so the form can be redisplayed; err is reserved for
// store failures.
func (s *contactService) Create(ctx context.Context, in ContactInput) (*types.Contact, types.FieldErrors, error) {
	now := s.now()
	c := types.NewContactFrom(s.ids)
	c.Name = in.Name
	c.Email = in.Email
	c.PhoneNumber = in.PhoneNumber

	dob, parseErr := types.ParseFormDate(in.DateOfBirth)
	c.SetDateOfBirthAt(dob, now)

	fieldErrs := types.Validate(c, now)
	if parseErr != nil {
		fieldErrs = replaceDateRequired(fieldErrs)
	}
	if len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			s.metrics.IncContactRejected(fe.Field)
		}
		s.log.Debug("contact rejected", "contact_id", c.ID, "fields", len(fieldErrs))
		return c, fieldErrs, nil
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, nil, fmt.Errorf("create contact: %w", err)
	}
	s.metrics.IncContactSaved()
	s.log.Info("contact created", "contact_id", c.ID)
	return c, nil, nil
}

// replaceDateRequired swaps the "required" error an unparsable date produces
// for a format error.
func replaceDateRequired(fieldErrs types.FieldErrors) types.FieldErrors {
	out := types.FieldErrors{{
		Field:   "dateOfBirth",
		Tag:     "typeMismatch",
		Message: "Date of birth must be in MM-dd-yyyy format",
	}}
	for _, fe := range fieldErrs {
		if fe.Field == "dateOfBirth" && fe.Tag == "required" {
			continue
		}
		out = append(out, fe)
	}
	return out
}

func (s *contactService) Get(ctx context.Context, id string) (*types.Contact, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repos.ErrContactNotFound) {
			return nil, apierr.NotFound("contact_not_found", err)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (s *contactService) List(ctx context.Context, startIndex int) (ContactPage, error) {
	if startIndex < 0 {
		return ContactPage{}, apierr.BadRequest("invalid_start_index", fmt.Errorf("startIndex must be >= 0, got %d", startIndex))
	}
	contacts, err := s.repo.FindAll(ctx, startIndex)
	if err != nil {
		return ContactPage{}, fmt.Errorf("list contacts: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return ContactPage{}, fmt.Errorf("count contacts: %w", err)
	}
	s.metrics.ObserveContactsListed(len(contacts))

	page := ContactPage{
		Contacts:   contacts,
		StartIndex: startIndex,
		PageSize:   repos.ContactPageSize,
		Total:      total,
		PrevIndex:  -1,
		NextIndex:  -1,
	}
	if startIndex > 0 {
		page.PrevIndex = max(startIndex-repos.ContactPageSize, 0)
	}
	if int64(startIndex+repos.ContactPageSize) < total {
		page.NextIndex = startIndex + repos.ContactPageSize
	}
	return page, nil
}
