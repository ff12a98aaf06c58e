package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/email"
	"taskhub/internal/metrics"

	"github.com/robfig/cron/v3"
)

type userLister interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
}

type openTaskLister interface {
	ListOpenByUser(ctx context.Context, userID string) ([]*domain.Task, error)
}

// Reminder emails every user a summary of their open tasks on a cron
// schedule. Failures are logged and not retried until the next cycle.
type Reminder struct {
	users  userLister
	tasks  openTaskLister
	email  email.Sender
	sched  cron.Schedule
	logger *slog.Logger
}

func NewReminder(cronExpr string, users userLister, tasks openTaskLister, sender email.Sender, logger *slog.Logger) (*Reminder, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse digest cron %q: %w", cronExpr, err)
	}

	return &Reminder{
		users:  users,
		tasks:  tasks,
		email:  sender,
		sched:  sched,
		logger: logger.With("component", "digest"),
	}, nil
}

// Start blocks until ctx is cancelled, firing a cycle at each cron tick.
func (r *Reminder) Start(ctx context.Context) {
	for {
		next := r.sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("digest stopped")
			return
		case <-timer.C:
			r.RunCycle(ctx)
		}
	}
}

// RunCycle sends one digest to every user with open tasks.
func (r *Reminder) RunCycle(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.DigestCycleDuration.Observe(time.Since(start).Seconds())
	}()

	users, err := r.users.ListAll(ctx)
	if err != nil {
		r.logger.Error("digest: list users", "error", err)
		return
	}

	var sent int
	for _, user := range users {
		open, err := r.tasks.ListOpenByUser(ctx, user.ID)
		if err != nil {
			r.logger.Error("digest: list open tasks", "user_id", user.ID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("error").Inc()
			continue
		}
		if len(open) == 0 {
			continue
		}

		subject := fmt.Sprintf("You have %d open task(s)", len(open))
		if err := r.email.Send(ctx, user.Email, subject, digestBody(user.Name, open)); err != nil {
			r.logger.Error("digest: send", "user_id", user.ID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.DigestEmailsTotal.WithLabelValues("sent").Inc()
		sent++
	}

	r.logger.Info("digest cycle done", "users", len(users), "emails_sent", sent)
}

func digestBody(name string, tasks []*domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s, these tasks are still open:</p><ul>", name)
	for _, t := range tasks {
		fmt.Fprintf(&b, "<li>%s</li>", t.Title)
	}
	b.WriteString("</ul>")
	return b.String()
}
