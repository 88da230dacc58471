package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"gradinvite/internal/domain"
)

// eventRepository is a read-through cache in front of another
// EventRepository. Guests hydrate the same event record on every code
// verification and chat message, so GetByID is served from memory.
type eventRepository struct {
	next  domain.EventRepository
	cache *gocache.Cache
}

// NewEventRepository wraps next with an in-memory cache whose entries live
// for ttl.
func NewEventRepository(next domain.EventRepository, ttl time.Duration) domain.EventRepository {
	return &eventRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func cacheKey(id string) string {
	return "event:" + id
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := r.next.Create(ctx, e); err != nil {
		return err
	}
	r.cache.Set(cacheKey(e.ID), e.Clone(), gocache.DefaultExpiration)
	return nil
}

// GetByID returns a deep copy of the cached record so callers may modify
// it freely. Entries are stored as copies too.
func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if x, found := r.cache.Get(cacheKey(id)); found {
		return x.(*domain.Event).Clone(), nil
	}
	e, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cacheKey(id), e.Clone(), gocache.DefaultExpiration)
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.next.List(ctx)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	r.cache.Delete(cacheKey(e.ID))
	if err := r.next.Update(ctx, e); err != nil {
		return err
	}
	r.cache.Set(cacheKey(e.ID), e.Clone(), gocache.DefaultExpiration)
	return nil
}
