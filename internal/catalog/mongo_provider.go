package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	plantsCollection        = "plants"
	compatibilityCollection = "compatibility_pairs"
)

// plantDoc and pairDoc mirror the bson-tagged document shapes stored by the
// catalog's owning system; this package only reads.
type plantDoc struct {
	ID                int      `bson:"id"`
	Species           string   `bson:"species"`
	ScientificName    string   `bson:"scientificName"`
	Types             []string `bson:"type"`
	SunRequirement    string   `bson:"sunRequirement"`
	WeeklyWaterLiters float64  `bson:"weeklyWaterLiters"`
	HarvestDays       int      `bson:"harvestDays"`
	SoilType          string   `bson:"soilType"`
	WaterPerKg        float64  `bson:"waterPerKg"`
	Benefits          []string `bson:"benefits"`
	Size              float64  `bson:"size"`
}

type pairDoc struct {
	A             string  `bson:"a"`
	B             string  `bson:"b"`
	Compatibility float64 `bson:"compatibility"`
}

// MongoProvider implements Provider against a Mongo database holding the
// plants and compatibility_pairs collections.
type MongoProvider struct {
	plants        *mongo.Collection
	compatibility *mongo.Collection
}

// NewMongoProvider wraps the two read-only collections this package needs.
func NewMongoProvider(db *mongo.Database) *MongoProvider {
	return &MongoProvider{
		plants:        db.Collection(plantsCollection),
		compatibility: db.Collection(compatibilityCollection),
	}
}

func (m *MongoProvider) ListPlants(ctx context.Context) ([]Plant, error) {
	cursor, err := m.plants.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("catalog: list plants: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []plantDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("catalog: decode plants: %w", err)
	}

	out := make([]Plant, 0, len(docs))
	for _, d := range docs {
		types := make([]PlantType, 0, len(d.Types))
		for _, t := range d.Types {
			types = append(types, PlantType(t))
		}
		out = append(out, Plant{
			ID:                d.ID,
			Species:           d.Species,
			ScientificName:    d.ScientificName,
			Types:             types,
			SunRequirement:    SunRequirement(d.SunRequirement),
			WeeklyWaterLiters: d.WeeklyWaterLiters,
			HarvestDays:       d.HarvestDays,
			SoilType:          d.SoilType,
			WaterPerKg:        d.WaterPerKg,
			Benefits:          d.Benefits,
			Size:              d.Size,
		})
	}
	return out, nil
}

func (m *MongoProvider) ListCompatibilityPairs(ctx context.Context) ([]CompatibilityPair, error) {
	cursor, err := m.compatibility.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("catalog: list compatibility pairs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []pairDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("catalog: decode compatibility pairs: %w", err)
	}

	out := make([]CompatibilityPair, 0, len(docs))
	for _, d := range docs {
		out = append(out, CompatibilityPair{A: d.A, B: d.B, Compatibility: d.Compatibility})
	}
	return out, nil
}
