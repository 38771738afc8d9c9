package events

import (
	"testing"
	"time"
)

func TestNilConnPublishIsNoop(t *testing.T) {
	p := NewPublisher(nil)
	// Must not panic: a nil NATS connection degrades every publish to a
	// logged no-op rather than failing the training/broadcast run.
	p.TrainingCompleted(TrainingCompleted{Version: "v1", K: 3, FitTimestamp: time.Now()})
	p.RecommendationReady(RecommendationReady{UserID: "u1", RecommendedIDs: []string{"g1"}})
}
