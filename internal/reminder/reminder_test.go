package reminder

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"

	"battleships/internal/database"
	"battleships/internal/game"
	"battleships/internal/models"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Message
}

func (r *recordingNotifier) Notify(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*game.Service, *clock) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := game.NewService(db)
	svc.SetClock(c.Now)
	return svc, c
}

func register(t *testing.T, svc *game.Service, name string) models.Identity {
	t.Helper()
	id := models.Identity{Email: name + "@example.com"}
	if _, err := svc.RegisterUser(context.Background(), id, name); err != nil {
		t.Fatalf("RegisterUser(%s) failed: %v", name, err)
	}
	return id
}

func TestSweepRemindsBothPlayers(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	info, err := svc.CreateGame(ctx, alice, nil)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if _, err := svc.JoinGame(ctx, bob, info.URLSafeKey); err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}

	notifier := &recordingNotifier{}
	sweeper := NewSweeper(svc, notifier, time.Hour, 72*time.Hour)

	c.now = c.now.Add(30 * time.Minute)
	report, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Checked != 0 || len(notifier.sent) != 0 {
		t.Fatalf("expected fresh game to be left alone, got %+v", report)
	}

	c.now = c.now.Add(2 * time.Hour)
	report, err = sweeper.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Reminded != 1 || len(notifier.sent) != 2 {
		t.Fatalf("expected both players reminded, got %+v and %d messages", report, len(notifier.sent))
	}
	if notifier.sent[0].To != "alice@example.com" || !strings.HasPrefix(notifier.sent[0].Body, "Hello alice!") {
		t.Fatalf("unexpected reminder: %+v", notifier.sent[0])
	}
	if notifier.sent[1].Subject != subject {
		t.Fatalf("unexpected subject: %q", notifier.sent[1].Subject)
	}
}

func TestSweepCancelsAbandonedGames(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	info, err := svc.CreateGame(ctx, alice, nil)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	notifier := &recordingNotifier{}
	sweeper := NewSweeper(svc, notifier, time.Hour, 72*time.Hour)

	c.now = c.now.Add(73 * time.Hour)
	report, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Cancelled != 1 || report.Reminded != 0 || len(notifier.sent) != 0 {
		t.Fatalf("expected cancellation without reminder, got %+v", report)
	}

	got, err := svc.GetGame(ctx, info.URLSafeKey)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if got.GameState != models.StateGameCancelled {
		t.Fatalf("expected cancelled game, got %s", got.GameState)
	}

	// Cancelled games are not active, so a second sweep finds nothing
	report, err = sweeper.Run(ctx)
	if err != nil || report.Checked != 0 {
		t.Fatalf("expected empty second sweep, got %+v err=%v", report, err)
	}
}

func TestExpireSkipsGameThatMoved(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")
	info, err := svc.CreateGame(ctx, alice, nil)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	c.now = c.now.Add(73 * time.Hour)
	stale, err := svc.StaleGames(ctx, c.now.Add(-72*time.Hour))
	if err != nil || len(stale) != 1 {
		t.Fatalf("expected one idle game, got %d err=%v", len(stale), err)
	}

	// bob joins after the sweep has picked the game up
	if _, err := svc.JoinGame(ctx, bob, info.URLSafeKey); err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}

	err = svc.ExpireGame(ctx, stale[0].ID, stale[0].Version)
	if !errors.Is(err, game.ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
	got, err := svc.GetGame(ctx, info.URLSafeKey)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if got.GameState != models.StatePreparingBoard {
		t.Fatalf("joined game should survive the sweep, got %s", got.GameState)
	}

	// the untouched snapshot version still expires
	if err := svc.ExpireGame(ctx, stale[0].ID, stale[0].Version+1); err != nil {
		t.Fatalf("ExpireGame with current version failed: %v", err)
	}
}

func TestSweepWithoutAutoCancel(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	if _, err := svc.CreateGame(ctx, alice, nil); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	notifier := &recordingNotifier{}
	sweeper := NewSweeper(svc, notifier, time.Hour, 0)

	c.now = c.now.Add(30 * 24 * time.Hour)
	report, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Cancelled != 0 || report.Reminded != 1 || len(notifier.sent) != 1 {
		t.Fatalf("expected reminder only, got %+v", report)
	}
}

func TestSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	sched, err := gocron.NewScheduler()
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer sched.Shutdown()

	job, err := NewSweeper(svc, LogNotifier{}, time.Hour, 0).Schedule(sched, time.Hour)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if job.Name() != "reminder-sweep" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if len(sched.Jobs()) != 1 {
		t.Fatalf("expected one scheduled job, got %d", len(sched.Jobs()))
	}
}
