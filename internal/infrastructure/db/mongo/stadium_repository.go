package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

type StadiumRepository struct {
	col *mongo.Collection
}

func NewStadiumRepository(db *mongo.Database) *StadiumRepository {
	return &StadiumRepository{col: db.Collection(collectionStadiums)}
}

// stadiumDoc adds the normalized name used for per-organization uniqueness.
type stadiumDoc struct {
	domain.Stadium `bson:",inline"`
	NameKey        string `bson:"nameKey"`
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *StadiumRepository) ExistsByName(ctx context.Context, organizationID, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"organizationId": organizationID, "nameKey": nameKey(name)}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count stadiums: %w", err)
	}
	return n > 0, nil
}

// Create inserts a new stadium document.
func (r *StadiumRepository) Create(ctx context.Context, s *domain.Stadium) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, stadiumDoc{Stadium: *s, NameKey: nameKey(s.Name)}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStadiumExists
		}
		return fmt.Errorf("insert stadium: %w", err)
	}
	return nil
}

// ListByOrganization returns an organization's stadiums, newest first.
func (r *StadiumRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*domain.Stadium, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"organizationId": organizationID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find stadiums: %w", err)
	}
	defer cur.Close(ctx)

	stadiums := make([]*domain.Stadium, 0)
	for cur.Next(ctx) {
		var doc stadiumDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode stadium: %w", err)
		}
		s := doc.Stadium
		stadiums = append(stadiums, &s)
	}
	return stadiums, cur.Err()
}
