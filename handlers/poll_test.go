package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/meetup-poll/clock"
	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/livesync"
	"github.com/danielhkuo/meetup-poll/models"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/store"
	"github.com/danielhkuo/meetup-poll/testutil"
)

// pollFixture spins up the hub and reconciler the way main does and
// waits for the first snapshot before handing control to the test.
func pollFixture(t *testing.T, s *store.Store, hub *feed.Hub, deadline time.Time) *PollHandler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go hub.Run(ctx)

	rec := livesync.New(s, hub)
	go rec.Run(ctx)

	waitForSnapshot(t, rec, 1)

	return NewPollHandler(rec, clock.New(deadline))
}

func waitForSnapshot(t *testing.T, rec *livesync.Reconciler, minReloads int64) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec.ReloadCount() >= minReloads && rec.Current().VotesLoaded {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Snapshot never reached %d reloads", minReloads)
}

func getPoll(t *testing.T, handler *PollHandler, user *models.User) models.PollViewResponse {
	t.Helper()

	req := httptest.NewRequest("GET", "/poll", nil)
	if user != nil {
		req = req.WithContext(session.WithUser(req.Context(), *user))
	}

	w := httptest.NewRecorder()
	handler.GetPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PollViewResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestGetPollView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := feed.NewHub()
	s := store.New(db, hub)

	a := testutil.CreateTestOption(t, db, "Cafe A", "owner-1")
	b := testutil.CreateTestOption(t, db, "Cafe B", "owner-1")
	testutil.CreateTestVote(t, db, b.ID, "voter-1")
	testutil.CreateTestVote(t, db, b.ID, "voter-2")
	testutil.CreateTestVote(t, db, a.ID, "voter-1")

	handler := pollFixture(t, s, hub, time.Time{})

	resp := getPoll(t, handler, &models.User{ID: "voter-1"})

	if resp.TotalVotes != 3 {
		t.Errorf("Expected 3 total votes, got %d", resp.TotalVotes)
	}
	if resp.UniqueVoters != 2 {
		t.Errorf("Expected 2 unique voters, got %d", resp.UniqueVoters)
	}
	if resp.Leading == nil || resp.Leading.ID != b.ID {
		t.Fatalf("Expected %s to lead, got %+v", b.ID, resp.Leading)
	}
	if resp.VotingClosed {
		t.Error("Expected voting open with no deadline set")
	}
	if resp.Deadline != nil {
		t.Error("Expected no deadline in the response")
	}
	if len(resp.Roster) != 3 {
		t.Errorf("Expected 3 roster entries, got %d", len(resp.Roster))
	}

	byID := make(map[string]models.OptionView, len(resp.Options))
	for _, v := range resp.Options {
		byID[v.ID] = v
	}
	if got := byID[b.ID]; got.LiveCount != 2 || !got.UserVoted || got.Percent != 67 {
		t.Errorf("Option B view wrong: count=%d voted=%v percent=%d", got.LiveCount, got.UserVoted, got.Percent)
	}
	if got := byID[a.ID]; got.LiveCount != 1 || !got.UserVoted || got.Percent != 33 {
		t.Errorf("Option A view wrong: count=%d voted=%v percent=%d", got.LiveCount, got.UserVoted, got.Percent)
	}

	// Anonymous viewers see the same tallies with no voted flags
	resp = getPoll(t, handler, nil)
	for _, v := range resp.Options {
		if v.UserVoted {
			t.Errorf("Anonymous view claims a vote on %s", v.ID)
		}
	}
}

func TestGetPollReflectsNewVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := feed.NewHub()
	s := store.New(db, hub)

	opt := testutil.CreateTestOption(t, db, "Cafe A", "owner-1")

	handler := pollFixture(t, s, hub, time.Time{})

	resp := getPoll(t, handler, nil)
	if resp.TotalVotes != 0 {
		t.Fatalf("Expected empty poll, got %d votes", resp.TotalVotes)
	}

	// A cast through the store publishes a change and the snapshot
	// catches up without any explicit refresh call
	before := handler.reconciler.ReloadCount()
	if _, err := s.CastVote(opt.ID, "voter-1", nil, nil); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	waitForSnapshot(t, handler.reconciler, before+1)

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp = getPoll(t, handler, &models.User{ID: "voter-1"})
		if resp.TotalVotes == 1 {
			break
		}
		if !time.Now().Before(deadline) {
			t.Fatalf("Snapshot never picked up the vote, total=%d", resp.TotalVotes)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if resp.Leading == nil || resp.Leading.ID != opt.ID {
		t.Fatalf("Expected %s to lead after the vote", opt.ID)
	}
	if !resp.Options[0].UserVoted {
		t.Error("Expected the caller's vote to be flagged")
	}
}

func TestGetPollClosed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	hub := feed.NewHub()
	s := store.New(db, hub)

	handler := pollFixture(t, s, hub, time.Now().Add(-time.Hour))

	resp := getPoll(t, handler, nil)
	if !resp.VotingClosed {
		t.Error("Expected closed poll with a past deadline")
	}
	if resp.Countdown != "Voting closed" {
		t.Errorf("Expected closed countdown message, got %q", resp.Countdown)
	}
	if resp.Deadline == nil {
		t.Error("Expected the deadline in the response")
	}
}
