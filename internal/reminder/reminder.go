package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"battleships/internal/game"
	"battleships/internal/models"
)

const (
	subject = "BattleShips - Ongoing game reminder!"
	body    = "Hello %s! You still have a BattleShips game in progress!" +
		" If you have time, come back and finish your game!" +
		" If you're finished, you can cancel the game."
)

// Message is a reminder addressed to one player
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers reminders
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes reminders to the log instead of sending them
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, msg Message) error {
	log.Printf("[Reminder] to=%s subject=%q body=%q", msg.To, msg.Subject, msg.Body)
	return nil
}

// Report counts what one sweep did
type Report struct {
	Checked   int `json:"checked"`
	Reminded  int `json:"reminded"`
	Cancelled int `json:"cancelled"`
	Failed    int `json:"failed"`
}

// Sweeper reminds players of idle games and cancels games idle for too long
type Sweeper struct {
	service     *game.Service
	notifier    Notifier
	remindAfter time.Duration
	cancelAfter time.Duration
}

// NewSweeper creates a sweeper. A zero cancelAfter disables auto-cancel.
func NewSweeper(service *game.Service, notifier Notifier, remindAfter, cancelAfter time.Duration) *Sweeper {
	return &Sweeper{
		service:     service,
		notifier:    notifier,
		remindAfter: remindAfter,
		cancelAfter: cancelAfter,
	}
}

// Run performs one sweep over every active game idle for at least remindAfter
func (s *Sweeper) Run(ctx context.Context) (Report, error) {
	var report Report
	now := s.service.Now()

	games, err := s.service.StaleGames(ctx, now.Add(-s.remindAfter))
	if err != nil {
		return report, fmt.Errorf("failed to load idle games: %w", err)
	}

	for _, g := range games {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		if s.cancelAfter > 0 && now.Sub(g.LastUpdate) >= s.cancelAfter {
			err := s.service.ExpireGame(ctx, g.ID, g.Version)
			switch {
			case err == nil:
				report.Cancelled++
				log.Printf("[Reminder] cancelled game %s, idle since %s", g.ID, g.LastUpdate.Format(time.RFC3339))
			case errors.Is(err, game.ErrConcurrentUpdate):
				// a player moved while we were sweeping; the game is no longer idle
			default:
				report.Failed++
				log.Printf("[Reminder] failed to cancel game %s: %v", g.ID, err)
			}
			continue
		}

		if err := s.remind(ctx, g); err != nil {
			report.Failed++
			log.Printf("[Reminder] failed to remind players of %s: %v", g.ID, err)
			continue
		}
		report.Reminded++
	}

	return report, nil
}

func (s *Sweeper) remind(ctx context.Context, g *models.Game) error {
	p1, p2, err := s.service.Players(ctx, g)
	if err != nil {
		return err
	}
	for _, u := range []*models.User{p1, p2} {
		if u == nil {
			continue
		}
		msg := Message{To: u.Email, Subject: subject, Body: fmt.Sprintf(body, u.Name)}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			return fmt.Errorf("notify %s: %w", u.Name, err)
		}
	}
	return nil
}

// Schedule registers the sweep on the scheduler to run every interval.
// Overlapping runs are skipped rather than queued.
func (s *Sweeper) Schedule(sched gocron.Scheduler, every time.Duration) (gocron.Job, error) {
	return sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()

			report, err := s.Run(ctx)
			if err != nil {
				log.Printf("[Scheduler] reminder sweep failed: %v", err)
				return
			}
			if report.Checked > 0 {
				log.Printf("[Scheduler] reminder sweep: %d checked, %d reminded, %d cancelled, %d failed",
					report.Checked, report.Reminded, report.Cancelled, report.Failed)
			}
		}),
		gocron.WithName("reminder-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
}
