package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingHistoryCollection = "training_history"

// TrainingHistoryEntry is one row of the training-history log persisted in
// the user store (§6): a summary of one completed or failed training run.
type TrainingHistoryEntry struct {
	Version      string    `bson:"version"`
	K            int       `bson:"k"`
	Silhouette   float64   `bson:"silhouette"`
	UserCount    int       `bson:"userCount"`
	Succeeded    bool      `bson:"succeeded"`
	FailureKind  string    `bson:"failureKind,omitempty"`
	FitTimestamp time.Time `bson:"fitTimestamp"`
}

// TrainingHistoryLog appends and lists training run summaries.
type TrainingHistoryLog struct {
	collection *mongo.Collection
}

func NewTrainingHistoryLog(db *mongo.Database) *TrainingHistoryLog {
	return &TrainingHistoryLog{collection: db.Collection(trainingHistoryCollection)}
}

func (l *TrainingHistoryLog) Append(ctx context.Context, entry TrainingHistoryEntry) error {
	if _, err := l.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("repository: append training history: %w", err)
	}
	return nil
}

// Latest returns the most recent entry, or (TrainingHistoryEntry{}, false)
// if no training run has ever completed.
func (l *TrainingHistoryLog) Latest(ctx context.Context) (TrainingHistoryEntry, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "fitTimestamp", Value: -1}})
	var entry TrainingHistoryEntry
	err := l.collection.FindOne(ctx, bson.M{}, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return TrainingHistoryEntry{}, false, nil
	}
	if err != nil {
		return TrainingHistoryEntry{}, false, fmt.Errorf("repository: latest training history: %w", err)
	}
	return entry, true, nil
}
