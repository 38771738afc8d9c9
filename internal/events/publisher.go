// Package events publishes the training-completed and recommendation-ready
// subjects. The core is publish-only: the push-notification
// collaborator (or any other subscriber) consumes these subjects externally.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	subjectTrainingCompleted   = "training.completed"
	subjectRecommendationReady = "recommendation.ready"
)

// TrainingCompleted is the payload for subjectTrainingCompleted.
type TrainingCompleted struct {
	Version      string    `json:"version"`
	K            int       `json:"k"`
	Silhouette   float64   `json:"silhouette"`
	UserCount    int       `json:"userCount"`
	FitTimestamp time.Time `json:"fitTimestamp"`
}

// RecommendationReady is the payload for subjectRecommendationReady,
// emitted once per user per broadcast run.
type RecommendationReady struct {
	UserID         string   `json:"userId"`
	RecommendedIDs []string `json:"recommendedIds"`
}

// Publisher publishes training/recommendation events. A nil conn (NATS
// unavailable) makes every publish a logged no-op: the core never fails a
// training or broadcast run because the event bus is down.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) TrainingCompleted(evt TrainingCompleted) {
	p.publish(subjectTrainingCompleted, evt)
}

func (p *Publisher) RecommendationReady(evt RecommendationReady) {
	p.publish(subjectRecommendationReady, evt)
}

func (p *Publisher) publish(subject string, payload interface{}) {
	if p.conn == nil {
		log.Debug().Str("subject", subject).Msg("events: no NATS connection, publish skipped")
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("events: failed to encode payload")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("events: publish failed")
	}
}
