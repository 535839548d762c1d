package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"pousada/services"
	"pousada/services/logger"

	"github.com/robfig/cron/v3"
)

type fakeReconciler struct {
	drifts []services.Drift
	err    error
}

func (f fakeReconciler) Reconcile(context.Context) ([]services.Drift, error) {
	return f.drifts, f.err
}

type fakeCompleter struct {
	cutoff time.Time
	n      int
	err    error
}

func (f *fakeCompleter) CompleteCheckedOut(_ context.Context, cutoff time.Time) (int, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

type recorder struct {
	messages []string
}

func (r *recorder) SendMessage(msg string) error {
	r.messages = append(r.messages, msg)
	return nil
}

func TestRunReconcilePublishesOnlyOnDrift(t *testing.T) {
	n := &recorder{}

	if got := RunReconcile(context.Background(), fakeReconciler{}, n, logger.Nop{}); len(got) != 0 {
		t.Errorf("drifts = %v", got)
	}
	if len(n.messages) != 0 {
		t.Errorf("published %d messages without drift", len(n.messages))
	}

	drift := fakeReconciler{drifts: []services.Drift{{EstablishmentID: 1, TotalRooms: 3, ExpectedTotalRooms: 2}}}
	if got := RunReconcile(context.Background(), drift, n, logger.Nop{}); len(got) != 1 {
		t.Errorf("drifts = %v, want 1", got)
	}
	if len(n.messages) != 1 {
		t.Errorf("published %d messages, want 1", len(n.messages))
	}

	failing := fakeReconciler{err: errors.New("db down")}
	if got := RunReconcile(context.Background(), failing, nil, logger.Nop{}); len(got) != 0 {
		t.Errorf("drifts = %v", got)
	}
}

func TestRunCompleteUsesStartOfDay(t *testing.T) {
	c := &fakeCompleter{n: 4}
	now := time.Date(2026, 3, 13, 18, 30, 0, 0, time.UTC)

	if got := RunComplete(context.Background(), c, now, logger.Nop{}); got != 4 {
		t.Errorf("completed = %d, want 4", got)
	}
	if want := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC); !c.cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", c.cutoff, want)
	}
}

func TestInitCronJobsValidatesSchedules(t *testing.T) {
	c := cron.New()
	defer c.Stop()
	err := InitCronJobs(c, Options{Reconciler: fakeReconciler{}, ReconcileSpec: "not a schedule"})
	if err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}

	c2 := cron.New()
	defer c2.Stop()
	if err := InitCronJobs(c2, Options{Reconciler: fakeReconciler{}, Completer: &fakeCompleter{}}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := len(c2.Entries()); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
}
