package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// OwnerRepository stores the super-admin's stadium_owners records.
type OwnerRepository struct {
	col *mongo.Collection
}

func NewOwnerRepository(db *mongo.Database) *OwnerRepository {
	return &OwnerRepository{col: db.Collection(collectionOwners)}
}

func (r *OwnerRepository) Get(ctx context.Context, id string) (*domain.StadiumOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.StadiumOwner
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return &o, nil
}

func (r *OwnerRepository) Create(ctx context.Context, o *domain.StadiumOwner) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

func (r *OwnerRepository) UpdateStatus(ctx context.Context, id string, status domain.OwnerStatus) error {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *OwnerRepository) UpdateUsername(ctx context.Context, id, username string) error {
	return r.set(ctx, id, bson.M{"credentials.username": username})
}

func (r *OwnerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"credentials.username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count owner usernames: %w", err)
	}
	return n > 0, nil
}

// List returns every owner record, newest first.
func (r *OwnerRepository) List(ctx context.Context) ([]*domain.StadiumOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find owners: %w", err)
	}
	defer cur.Close(ctx)

	owners := make([]*domain.StadiumOwner, 0)
	if err := cur.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("decode owners: %w", err)
	}
	return owners, nil
}

func (r *OwnerRepository) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update owner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}
