// Package jobs provides scheduled background tasks. Jobs are cron-driven via
// github.com/robfig/cron/v3 and wrap application command handlers.
package jobs

import (
	"context"
	"log/slog"

	"parcelgo/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob periodically sweeps the backlog of confirmed on-demand orders
// and assigns each to the nearest available courier. Orders that cannot be
// dispatched yet stay in the backlog for the next run.
type DispatchJob struct {
	handler  commands.DispatchOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDispatchJob creates the backlog dispatch job. The schedule is a cron
// expression with a seconds field, e.g. "*/10 * * * * *".
func NewDispatchJob(
	handler commands.DispatchOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DispatchJob {
	return &DispatchJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dispatch_job"),
	}
}

// Start begins running the dispatch sweep on the configured schedule.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOrdersCommand()

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep failed", "error", handleErr)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the dispatch job. Runs already in flight are allowed to finish.
func (j *DispatchJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
