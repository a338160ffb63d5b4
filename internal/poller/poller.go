// Package poller runs the homework status polling loop.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"homework_bot/internal/homework"
	"homework_bot/internal/model"
)

// DefaultInterval is the pause between poll cycles.
const DefaultInterval = 600 * time.Second

// Fetcher retrieves the raw API payload for statuses changed since a unix timestamp.
type Fetcher interface {
	Fetch(ctx context.Context, since int64) (any, error)
}

// Sender delivers a text message to a destination.
type Sender interface {
	Send(ctx context.Context, destination, text string) error
}

// Journal records notification attempts.
type Journal interface {
	RecordNotification(ctx context.Context, n *model.Notification) error
}

// Poller periodically checks the tracked homework and notifies on status changes.
// A Poller is not safe for concurrent use; Run owns its state.
type Poller struct {
	fetcher     Fetcher
	catalog     *homework.Catalog
	sender      Sender
	destination string
	journal     Journal
	log         *slog.Logger
	schedule    cron.Schedule
	now         func() time.Time

	last   *model.Homework
	cursor int64
}

// New creates a Poller that reports to destination through sender.
func New(f Fetcher, catalog *homework.Catalog, sender Sender, destination string, log *slog.Logger) *Poller {
	return &Poller{
		fetcher:     f,
		catalog:     catalog,
		sender:      sender,
		destination: destination,
		log:         log,
		schedule:    cron.Every(DefaultInterval),
		now:         time.Now,
	}
}

// SetInterval overrides the default 10-minute pause between cycles.
// cron.Every rounds d down to whole seconds, with a one-second minimum.
func (p *Poller) SetInterval(d time.Duration) {
	p.schedule = cron.Every(d)
}

// SetSchedule replaces the cycle schedule. Next is evaluated after each cycle ends.
func (p *Poller) SetSchedule(s cron.Schedule) {
	p.schedule = s
}

// SetJournal enables journaling of every notification attempt.
func (p *Poller) SetJournal(j Journal) {
	p.journal = j
}

// Run polls until ctx is cancelled. The first cycle starts immediately.
func (p *Poller) Run(ctx context.Context) {
	p.reset()
	p.log.Info("poller started", "cursor", p.cursor)

	for {
		p.poll(ctx)

		next := p.schedule.Next(p.now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			p.log.Info("poller stopped")
			return
		case <-timer.C:
		}
	}
}

func (p *Poller) reset() {
	p.last = nil
	p.cursor = p.now().Unix()
}

// poll runs one cycle. Errors are reported and never escape.
// The cursor only moves after a successful cycle, so changes made before a
// failed fetch are asked for again on the next one.
func (p *Poller) poll(ctx context.Context) {
	err := p.check(ctx)
	if err == nil {
		p.cursor = p.now().Unix()
		return
	}
	if ctx.Err() != nil {
		p.log.Info("poll cycle interrupted", "error", err)
		return
	}
	p.log.Error("poll cycle failed", "error", err)
	p.notify(ctx, model.Notification{
		Kind: model.KindFailure,
		Text: homework.FailureMessage(err),
	})
}

func (p *Poller) check(ctx context.Context) error {
	payload, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return err
	}

	records, err := homework.Validate(payload)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		p.log.Debug("no new homework status", "since", p.cursor)
		return nil
	}

	// Only the first record is consulted; the API lists the latest change first.
	latest := records[0]
	if p.last != nil && *p.last == latest {
		p.log.Debug("homework status unchanged", "homework", latest.Name, "status", latest.Status)
		return nil
	}

	text, err := p.catalog.Format(latest)
	if err != nil {
		return err
	}

	p.notify(ctx, model.Notification{
		Kind:         model.KindStatus,
		HomeworkName: latest.Name,
		Status:       latest.Status,
		Text:         text,
	})
	p.last = &latest
	return nil
}

// notify sends n and journals the attempt. Failures are only logged.
func (p *Poller) notify(ctx context.Context, n model.Notification) {
	if err := p.sender.Send(ctx, p.destination, n.Text); err != nil {
		p.log.Error("send notification", "destination", p.destination, "kind", n.Kind, "error", err)
		n.Error = err.Error()
	} else {
		n.Delivered = true
		p.log.Info("notification sent", "kind", n.Kind, "text", n.Text)
	}

	if p.journal == nil {
		return
	}
	if err := p.journal.RecordNotification(ctx, &n); err != nil {
		p.log.Error("record notification", "kind", n.Kind, "error", err)
	}
}
