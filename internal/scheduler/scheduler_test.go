package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantgen-backend/internal/clustermodel"
	"plantgen-backend/internal/events"
	"plantgen-backend/internal/featurecache"
	"plantgen-backend/internal/features"
	"plantgen-backend/internal/recommend"
	"plantgen-backend/internal/repository"
	"plantgen-backend/internal/training"
)

func TestRetrainSpecFormat(t *testing.T) {
	assert.Equal(t, "0 3 1 * *", RetrainSpec(1, 3))
}

func TestBroadcastSpecFormat(t *testing.T) {
	assert.Equal(t, "0 9 * * 1", BroadcastSpec(1, 9))
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Send(ctx context.Context, userID, title, body string, data map[string]string) error {
	f.sent = append(f.sent, userID)
	return nil
}

type fakeSource struct {
	records []recommend.GardenRecord
}

func (f *fakeSource) ActiveGardensInCluster(ctx context.Context, label int, excludeUserID string) ([]recommend.GardenRecord, error) {
	return f.records, nil
}

func separatedUsers(n int) ([]repository.UserRecord, []repository.GardenRecord) {
	var users []repository.UserRecord
	var gardens []repository.GardenRecord
	blocks := []float64{1, 50, 100}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("user-%d", i)
		block := blocks[i%3]
		users = append(users, repository.UserRecord{
			ID:        id,
			PushToken: "token-" + id,
			Doc: features.UserDoc{
				"experienceLevel": block,
				"objective":       "alimenticio",
			},
		})
		gardens = append(gardens, repository.GardenRecord{
			ID:      "garden-" + id,
			OwnerID: id,
			Active:  true,
		})
	}
	return users, gardens
}

func TestRunRetrainPublishesModel(t *testing.T) {
	users, gardens := separatedUsers(30)
	provider := repository.NewMemoryProvider(users, gardens)
	cache := featurecache.New(nil)
	store := clustermodel.NewStore(nil)
	logger := zerolog.Nop()

	pipeline := training.NewPipeline(provider, cache, store, nil, nil, events.NewPublisher(nil), t.TempDir(), training.DefaultConfig(), &logger)
	s := New(pipeline, recommend.NewScorer(&fakeSource{}), cache, store, provider, &fakeNotifier{}, events.NewPublisher(nil), &logger)

	s.runRetrain()

	require.NotNil(t, store.Load())
	assert.Equal(t, 3, store.Load().K)
}

func TestRunBroadcastSkipsWithoutPublishedModel(t *testing.T) {
	users, gardens := separatedUsers(3)
	provider := repository.NewMemoryProvider(users, gardens)
	cache := featurecache.New(nil)
	store := clustermodel.NewStore(nil)
	logger := zerolog.Nop()
	notifier := &fakeNotifier{}

	s := New(nil, recommend.NewScorer(&fakeSource{}), cache, store, provider, notifier, events.NewPublisher(nil), &logger)
	s.runBroadcast()

	assert.Empty(t, notifier.sent)
}
