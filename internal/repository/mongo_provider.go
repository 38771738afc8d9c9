package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection   = "users"
	gardensCollection = "gardens"
)

type userDoc struct {
	ID           string                 `bson:"_id"`
	PushToken    string                 `bson:"pushToken"`
	ClusterLabel *int                   `bson:"clusterLabel,omitempty"`
	Fields       map[string]interface{} `bson:",inline"`
}

type gardenDoc struct {
	ID          string                 `bson:"_id"`
	OwnerID     string                 `bson:"ownerId"`
	Name        string                 `bson:"name"`
	Description string                 `bson:"description"`
	Active      bool                   `bson:"active"`
	Fields      map[string]interface{} `bson:",inline"`
}

// MongoProvider implements UserGardenProvider against the users and gardens
// collections, mirroring the collection-wrapper shape used throughout this
// codebase's other Mongo-backed repositories.
type MongoProvider struct {
	users   *mongo.Collection
	gardens *mongo.Collection
}

func NewMongoProvider(db *mongo.Database) *MongoProvider {
	return &MongoProvider{
		users:   db.Collection(usersCollection),
		gardens: db.Collection(gardensCollection),
	}
}

func (p *MongoProvider) ListUsers(ctx context.Context) ([]UserRecord, error) {
	cursor, err := p.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repository: decode users: %w", err)
	}
	out := make([]UserRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, toUserRecord(d))
	}
	return out, nil
}

func (p *MongoProvider) ListUsersByClusterLabel(ctx context.Context, label int) ([]UserRecord, error) {
	cursor, err := p.users.Find(ctx, bson.M{"clusterLabel": label})
	if err != nil {
		return nil, fmt.Errorf("repository: list users by cluster: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repository: decode users by cluster: %w", err)
	}
	out := make([]UserRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, toUserRecord(d))
	}
	return out, nil
}

func (p *MongoProvider) GardensByOwner(ctx context.Context, ownerID string) ([]GardenRecord, error) {
	cursor, err := p.gardens.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repository: gardens by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []gardenDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repository: decode gardens: %w", err)
	}
	out := make([]GardenRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, toGardenRecord(d))
	}
	return out, nil
}

func (p *MongoProvider) UserByID(ctx context.Context, id string) (UserRecord, error) {
	var d userDoc
	if err := p.users.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return UserRecord{}, errNotFound(id)
		}
		return UserRecord{}, fmt.Errorf("repository: user by id: %w", err)
	}
	return toUserRecord(d), nil
}

func (p *MongoProvider) UpdateClusterLabel(ctx context.Context, userID string, label int) error {
	res, err := p.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"clusterLabel": label}})
	if err != nil {
		return fmt.Errorf("repository: update cluster label: %w", err)
	}
	if res.MatchedCount == 0 {
		return errNotFound(userID)
	}
	return nil
}

func toUserRecord(d userDoc) UserRecord {
	r := UserRecord{ID: d.ID, Doc: d.Fields, PushToken: d.PushToken}
	if d.ClusterLabel != nil {
		r.ClusterLabel = *d.ClusterLabel
		r.HasLabel = true
	}
	return r
}

func toGardenRecord(d gardenDoc) GardenRecord {
	return GardenRecord{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Doc:         d.Fields,
		Name:        d.Name,
		Description: d.Description,
		Active:      d.Active,
	}
}
