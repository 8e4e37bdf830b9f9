package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	types "github.com/yungbote/addressbook-backend/internal/domain/contact"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

const (
	// ListKey holds contact ids, newest first.
	ListKey = "contactlist"
	// MapKey holds id -> JSON encoded contact.
	MapKey = ListKey + "_Map"
	// PageSize is the number of ids read per FindAll window.
	PageSize = 10
)

var ErrContactNotFound = errors.New("contact not found")

type ContactRepo interface {
	Save(ctx context.Context, c *types.Contact) error
	FindByID(ctx context.Context, id string) (*types.Contact, error)
	FindAll(ctx context.Context, startIndex int) ([]*types.Contact, error)
	Count(ctx context.Context) (int64, error)
}

type contactRepo struct {
	store  kv.Store
	log    *logger.Logger
	tracer trace.Tracer
}

func NewContactRepo(store kv.Store, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{
		store:  store,
		log:    repoLog,
		tracer: otel.Tracer("github.com/yungbote/addressbook-backend/internal/data/repos/contact"),
	}
}

// Save prepends the id to the list and upserts the record in the map. The
// two writes are independent: re-saving an id repeats it in the list, and a
// failure between them leaves the structures out of step.
func (r *contactRepo) Save(ctx context.Context, c *types.Contact) (err error) {
	ctx, span := r.tracer.Start(ctx, "ContactRepo.Save")
	defer func() { endSpan(span, err) }()

	if c == nil || c.ID == "" {
		return fmt.Errorf("save contact: missing id")
	}
	span.SetAttributes(attribute.String("contact.id", c.ID))

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode contact %s: %w", c.ID, err)
	}
	if err := r.store.LPush(ctx, ListKey, c.ID); err != nil {
		return fmt.Errorf("push contact id %s: %w", c.ID, err)
	}
	if err := r.store.HSet(ctx, MapKey, c.ID, raw); err != nil {
		r.log.Error("contact id pushed without record", "contact_id", c.ID, "error", err)
		return fmt.Errorf("put contact %s: %w", c.ID, err)
	}
	r.log.Debug("contact saved", "contact_id", c.ID)
	return nil
}

func (r *contactRepo) FindByID(ctx context.Context, id string) (c *types.Contact, err error) {
	ctx, span := r.tracer.Start(ctx, "ContactRepo.FindByID", trace.WithAttributes(attribute.String("contact.id", id)))
	defer func() { endSpan(span, err) }()

	raw, ok, err := r.store.HGet(ctx, MapKey, id)
	if err != nil {
		return nil, fmt.Errorf("get contact %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	out := &types.Contact{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode contact %s: %w", id, err)
	}
	return out, nil
}

// FindAll reads PageSize ids starting at startIndex and returns the records
// that resolve, in list order. Ids without a decodable record are skipped.
func (r *contactRepo) FindAll(ctx context.Context, startIndex int) (out []*types.Contact, err error) {
	ctx, span := r.tracer.Start(ctx, "ContactRepo.FindAll", trace.WithAttributes(attribute.Int("contact.start_index", startIndex)))
	defer func() { endSpan(span, err) }()

	if startIndex < 0 {
		startIndex = 0
	}
	start := int64(startIndex)
	ids, err := r.store.LRange(ctx, ListKey, start, start+PageSize-1)
	if err != nil {
		return nil, fmt.Errorf("range contact ids from %d: %w", startIndex, err)
	}
	out = make([]*types.Contact, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	vals, err := r.store.HMGet(ctx, MapKey, ids...)
	if err != nil {
		return nil, fmt.Errorf("multi-get contacts: %w", err)
	}
	for i, raw := range vals {
		if raw == nil {
			r.log.Warn("contact id listed without record", "contact_id", ids[i])
			continue
		}
		c := &types.Contact{}
		if err := json.Unmarshal(raw, c); err != nil || c.ID == "" {
			r.log.Warn("skipping undecodable contact record", "contact_id", ids[i], "error", err)
			continue
		}
		out = append(out, c)
	}
	span.SetAttributes(attribute.Int("contact.count", len(out)))
	return out, nil
}

func (r *contactRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.store.LLen(ctx, ListKey)
	if err != nil {
		return 0, fmt.Errorf("count contact ids: %w", err)
	}
	return n, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
