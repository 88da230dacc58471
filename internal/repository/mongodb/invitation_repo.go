package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gradinvite/internal/domain"
)

type invitationRepository struct {
	coll *mongo.Collection
}

// NewInvitationRepository stores invitations in db. EnsureIndexes must have
// run against db so duplicate codes are rejected.
func NewInvitationRepository(db *mongo.Database) domain.InvitationRepository {
	return &invitationRepository{
		coll: db.Collection(invitationsCollection),
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	_, err := r.coll.InsertOne(ctx, inv)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateCode
	}
	return err
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.CreatedAt = inv.CreatedAt.UTC()
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	return r.find(ctx, bson.M{"event_id": eventID})
}

func (r *invitationRepository) List(ctx context.Context) ([]*domain.Invitation, error) {
	return r.find(ctx, bson.M{})
}

func (r *invitationRepository) find(ctx context.Context, filter bson.M) ([]*domain.Invitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "code", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invs := make([]*domain.Invitation, 0)
	for cur.Next(ctx) {
		inv := &domain.Invitation{}
		if err := cur.Decode(inv); err != nil {
			return nil, err
		}
		inv.CreatedAt = inv.CreatedAt.UTC()
		invs = append(invs, inv)
	}
	return invs, cur.Err()
}
