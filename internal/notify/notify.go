// Package notify defines the push-notification collaborator (§6): a
// one-method interface the core calls out to and is otherwise unaware of.
// Failures are logged, never retried from the core.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Notifier sends a push notification to one user.
type Notifier interface {
	Send(ctx context.Context, userID, title, body string, data map[string]string) error
}

// LogNotifier is the default, transport-less implementation: it logs what
// would have been sent. Real delivery (FCM, APNs, etc.) is outside this
// core's scope and plugs in behind the same interface.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, userID, title, body string, data map[string]string) error {
	log.Info().
		Str("userId", userID).
		Str("title", title).
		Str("body", body).
		Interface("data", data).
		Msg("notify: push notification (log-only transport)")
	return nil
}
