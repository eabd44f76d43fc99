// File: internal/jobs/account_summary.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"nopea_backend/internal/config"
	"nopea_backend/internal/user"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AccountSummaryJob periodically reports total and active account counts.
type AccountSummaryJob struct {
	userService   user.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewAccountSummaryJob creates a new AccountSummaryJob.
func NewAccountSummaryJob(
	userService user.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *AccountSummaryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &AccountSummaryJob{
		userService:   userService,
		logger:        logger.Named("AccountSummaryJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *AccountSummaryJob) SetupAndStart() error {
	jobSpec := j.cfg.AccountSummaryJobSchedule // e.g., "@daily", "0 1 * * *"
	if jobSpec == "" {
		j.logger.Warn("Account summary job schedule not defined (ACCOUNT_SUMMARY_JOB_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule account summary job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Account summary job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *AccountSummaryJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	all, err := j.userService.List(ctx, false)
	if err != nil {
		j.logger.Error("Account summary job run failed", zap.Error(err))
		return
	}
	active, err := j.userService.List(ctx, true)
	if err != nil {
		j.logger.Error("Account summary job run failed", zap.Error(err))
		return
	}

	j.logger.Info("Account summary",
		zap.Int("total_accounts", len(all)),
		zap.Int("active_accounts", len(active)),
	)
}

// Stop gracefully stops the cron scheduler.
func (j *AccountSummaryJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping account summary job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Account summary job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Account summary job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
