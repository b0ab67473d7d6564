package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/ariefcatur/craft-marketplace.git/internal/requests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore mereplikasi predicate store asli di memory, termasuk guard
// status/flag pada commit.
type fakeStore struct {
	byID      map[string]*requests.Request
	calls     []string
	failRead  bool
	failWrite bool
}

func newFakeStore(rs ...requests.Request) *fakeStore {
	s := &fakeStore{byID: map[string]*requests.Request{}}
	for i := range rs {
		r := rs[i]
		s.byID[r.ID] = &r
	}
	return s
}

func (s *fakeStore) ExpiredOpen(ctx context.Context, now time.Time) ([]requests.Request, error) {
	s.calls = append(s.calls, "expired-select")
	if s.failRead {
		return nil, errors.New("store down")
	}
	var out []requests.Request
	for _, r := range s.byID {
		if r.Status == requests.StatusOpen && r.Deadline.Before(now) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) ReminderDue(ctx context.Context, now, until time.Time) ([]requests.Request, error) {
	s.calls = append(s.calls, "reminder-select")
	if s.failRead {
		return nil, errors.New("store down")
	}
	var out []requests.Request
	for _, r := range s.byID {
		if r.Status == requests.StatusOpen && !r.ReminderSent &&
			r.Deadline.After(now) && !r.Deadline.After(until) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) CommitExpiry(ctx context.Context, now time.Time, ups []requests.ExpiryUpdate) ([]notify.Notification, error) {
	s.calls = append(s.calls, "expiry-commit")
	if s.failWrite {
		return nil, errors.New("commit failed")
	}
	var committed []notify.Notification
	for _, up := range ups {
		r := s.byID[up.RequestID]
		if r == nil || r.Status != requests.StatusOpen {
			continue
		}
		r.Status = up.Status
		committed = append(committed, up.Notif)
	}
	return committed, nil
}

func (s *fakeStore) CommitReminders(ctx context.Context, now time.Time, ups []requests.ReminderUpdate) ([]notify.Notification, error) {
	s.calls = append(s.calls, "reminder-commit")
	if s.failWrite {
		return nil, errors.New("commit failed")
	}
	var committed []notify.Notification
	for _, up := range ups {
		r := s.byID[up.RequestID]
		if r == nil || r.Status != requests.StatusOpen || r.ReminderSent {
			continue
		}
		r.ReminderSent = true
		committed = append(committed, up.Notif)
	}
	return committed, nil
}

type fakeDispatcher struct {
	sent      []notify.Notification
	failEvery bool
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, n notify.Notification) error {
	d.sent = append(d.sent, n)
	if d.failEvery {
		return errors.New("channel down")
	}
	return nil
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedEngine(s Store, d Dispatcher) *Engine {
	return &Engine{Store: s, Dispatcher: d, Now: func() time.Time { return testNow }}
}

func TestRunExpiresDueRequests(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour), QuotationCount: 0},
		requests.Request{ID: "b", BuyerID: "b2", Title: "Rug", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Minute), QuotationCount: 2},
		requests.Request{ID: "c", BuyerID: "b3", Title: "Bowl", Status: requests.StatusOpen, Deadline: testNow.Add(48 * time.Hour)},
		requests.Request{ID: "d", BuyerID: "b4", Title: "Hat", Status: requests.StatusCancelled, Deadline: testNow.Add(-time.Hour)},
	)
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	res, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ExpiredCount)

	assert.Equal(t, requests.StatusExpired, store.byID["a"].Status)
	assert.Equal(t, requests.StatusDeadlineExpired, store.byID["b"].Status)
	// bukan open -> tidak disentuh sweep
	assert.Equal(t, requests.StatusOpen, store.byID["c"].Status)
	assert.Equal(t, requests.StatusCancelled, store.byID["d"].Status)

	require.Len(t, disp.sent, 2)
	for _, n := range disp.sent {
		assert.Equal(t, notify.TypeDeadlineExpired, n.Type)
	}
}

func TestRunExpiryBeforeReminder(t *testing.T) {
	// deadline lewat di tick yang sama: harus expired, bukan diremind
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Second), QuotationCount: 1},
	)
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	res, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExpiredCount)
	assert.Equal(t, 0, res.RemindedCount)
	assert.False(t, store.byID["a"].ReminderSent)

	assert.Equal(t, []string{"expired-select", "expiry-commit", "reminder-select", "reminder-commit"}, store.calls)
}

func TestRunRemindsApproachingDeadlines(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(2 * time.Hour)},
		requests.Request{ID: "b", BuyerID: "b2", Title: "Rug", Status: requests.StatusOpen, Deadline: testNow.Add(30 * time.Hour)},
		requests.Request{ID: "c", BuyerID: "b3", Title: "Bowl", Status: requests.StatusOpen, Deadline: testNow.Add(3 * time.Hour), ReminderSent: true},
	)
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	res, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RemindedCount)
	assert.True(t, store.byID["a"].ReminderSent)
	assert.False(t, store.byID["b"].ReminderSent) // di luar window 24h

	require.Len(t, disp.sent, 1)
	assert.Equal(t, notify.TypeSystemUpdate, disp.sent[0].Type)
	assert.Contains(t, disp.sent[0].Message, "2 hours left")
}

func TestReminderIdempotent(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(2 * time.Hour)},
	)
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	res1, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res1.RemindedCount)

	// run kedua tanpa perubahan waktu: flag sudah true, select kosong
	res2, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, res2.RemindedCount)
	assert.Len(t, disp.sent, 1)
}

func TestSkipsRecordWithoutBuyer(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour)},
		requests.Request{ID: "b", BuyerID: "b2", Title: "Rug", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour), QuotationCount: 1},
	)
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	res, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExpiredCount)
	// record cacat tidak diubah, sisanya tetap diproses
	assert.Equal(t, requests.StatusOpen, store.byID["a"].Status)
	assert.Equal(t, requests.StatusDeadlineExpired, store.byID["b"].Status)
}

func TestStoreReadFailureAbortsRun(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour)},
	)
	store.failRead = true
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	_, err := eng.Run(context.Background(), testNow)
	require.Error(t, err)
	assert.Empty(t, disp.sent)
	assert.Equal(t, requests.StatusOpen, store.byID["a"].Status)
}

func TestCommitFailureDispatchesNothing(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour)},
	)
	store.failWrite = true
	disp := &fakeDispatcher{}
	eng := fixedEngine(store, disp)

	_, err := eng.Run(context.Background(), testNow)
	require.Error(t, err)
	assert.Empty(t, disp.sent)
}

func TestDispatchFailureDoesNotFailRun(t *testing.T) {
	store := newFakeStore(
		requests.Request{ID: "a", BuyerID: "b1", Title: "Vase", Status: requests.StatusOpen, Deadline: testNow.Add(-time.Hour)},
	)
	disp := &fakeDispatcher{failEvery: true}
	eng := fixedEngine(store, disp)

	res, err := eng.Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExpiredCount)
	// state tetap commit walau kirim gagal
	assert.Equal(t, requests.StatusExpired, store.byID["a"].Status)
}
