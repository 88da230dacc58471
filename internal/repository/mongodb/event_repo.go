package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gradinvite/internal/domain"
)

type eventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{
		coll: db.Collection(eventsCollection),
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	_, err := r.coll.InsertOne(ctx, e)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e := &domain.Event{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	normalizeEvent(e)
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := make([]*domain.Event, 0)
	for cur.Next(ctx) {
		e := &domain.Event{}
		if err := cur.Decode(e); err != nil {
			return nil, err
		}
		normalizeEvent(e)
		events = append(events, e)
	}
	return events, cur.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BSON dates carry millisecond precision in UTC; photo_urls may be absent on
// documents written by older clients.
func normalizeEvent(e *domain.Event) {
	e.GraduationAt = e.GraduationAt.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	if e.PhotoURLs == nil {
		e.PhotoURLs = []string{}
	}
}
