package livesync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/models"
)

// fakeLoader serves canned table contents and can hold a load open to
// exercise the teardown race.
type fakeLoader struct {
	mu      sync.Mutex
	options []models.Option
	votes   []models.Vote
	gate    chan struct{} // when set, ListVotes blocks until closed
}

func (f *fakeLoader) ListOptions() ([]models.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Option(nil), f.options...), nil
}

func (f *fakeLoader) ListVotes() ([]models.Vote, error) {
	f.mu.Lock()
	gate := f.gate
	votes := append([]models.Vote(nil), f.votes...)
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return votes, nil
}

func (f *fakeLoader) set(options []models.Option, votes []models.Vote) {
	f.mu.Lock()
	f.options = options
	f.votes = votes
	f.mu.Unlock()
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func startReconciler(t *testing.T, loader Loader) (*Reconciler, *feed.Hub, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := feed.NewHub()
	go hub.Run(ctx)

	r := New(loader, hub)
	go r.Run(ctx)

	return r, hub, cancel
}

func TestInitialLoadOnSubscribe(t *testing.T) {
	loader := &fakeLoader{
		options: []models.Option{{ID: "a", Name: "Cafe A"}},
		votes:   []models.Vote{{ID: "v1", OptionID: "a", VoterID: "u1"}},
	}

	r, _, cancel := startReconciler(t, loader)
	defer cancel()

	// Data must arrive without any change event ever firing
	eventually(t, func() bool { return r.Current().VotesLoaded }, "Initial load never happened")

	snap := r.Current()
	if len(snap.Options) != 1 || len(snap.Votes) != 1 {
		t.Errorf("Unexpected snapshot: %d options, %d votes", len(snap.Options), len(snap.Votes))
	}
	if r.State(models.TableOptions) != Subscribed || r.State(models.TableVotes) != Subscribed {
		t.Errorf("Expected both tables subscribed, got %s/%s",
			r.State(models.TableOptions), r.State(models.TableVotes))
	}
}

func TestChangeEventTriggersFullReload(t *testing.T) {
	loader := &fakeLoader{options: []models.Option{{ID: "a", Name: "Cafe A"}}}

	r, hub, cancel := startReconciler(t, loader)
	defer cancel()

	eventually(t, func() bool { return r.Current().VotesLoaded }, "Initial load never happened")

	// A votes change must refresh options too: reloads are always both
	// tables, never a partial patch.
	loader.set(
		[]models.Option{{ID: "a", Name: "Cafe A"}, {ID: "b", Name: "Cafe B"}},
		[]models.Vote{{ID: "v1", OptionID: "b", VoterID: "u1"}},
	)
	hub.Publish(models.TableVotes, feed.ActionInsert)

	eventually(t, func() bool { return len(r.Current().Votes) == 1 }, "Reload never applied")

	snap := r.Current()
	if len(snap.Options) != 2 {
		t.Errorf("Expected options reloaded alongside votes, got %d", len(snap.Options))
	}
}

func TestRedundantNotificationLeavesStateUnchanged(t *testing.T) {
	loader := &fakeLoader{
		options: []models.Option{{ID: "a", Name: "Cafe A"}},
		votes:   []models.Vote{{ID: "v1", OptionID: "a", VoterID: "u1"}},
	}

	r, hub, cancel := startReconciler(t, loader)
	defer cancel()

	eventually(t, func() bool { return r.Current().VotesLoaded }, "Initial load never happened")
	before := r.ReloadCount()

	// Notification with no underlying data change: one reload cycle
	// runs and the derived state converges on itself.
	hub.Publish(models.TableVotes, feed.ActionUpdate)

	eventually(t, func() bool { return r.ReloadCount() == before+1 }, "Reload cycle never ran")

	time.Sleep(20 * time.Millisecond)
	if got := r.ReloadCount(); got != before+1 {
		t.Errorf("Expected exactly one reload cycle, got %d extra", got-before)
	}

	snap := r.Current()
	if len(snap.Options) != 1 || len(snap.Votes) != 1 {
		t.Errorf("Snapshot changed without a data change: %+v", snap)
	}
}

func TestTeardownDiscardsInFlightReload(t *testing.T) {
	gate := make(chan struct{})
	loader := &fakeLoader{options: []models.Option{{ID: "a", Name: "Cafe A"}}}

	r, hub, cancel := startReconciler(t, loader)

	eventually(t, func() bool { return r.Current().VotesLoaded }, "Initial load never happened")

	// Hold the next votes load open, then tear down mid-flight
	loader.mu.Lock()
	loader.gate = gate
	loader.votes = []models.Vote{{ID: "v-late", OptionID: "a", VoterID: "u9"}}
	loader.mu.Unlock()

	hub.Publish(models.TableVotes, feed.ActionInsert)
	eventually(t, func() bool { return r.ReloadCount() == 2 }, "Reload never started")

	cancel()
	close(gate)

	time.Sleep(20 * time.Millisecond)
	if len(r.Current().Votes) != 0 {
		t.Error("Late reload result was applied after teardown")
	}
	eventually(t, func() bool { return r.State(models.TableVotes) == Disconnected },
		"Subscription not torn down")
}
