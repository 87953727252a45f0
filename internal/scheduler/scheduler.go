package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/domain/models"
	"github.com/mamadbah2/suraksha/internal/metrics"
	"github.com/mamadbah2/suraksha/internal/service/reporting"
)

// ReportBuilder renders and exports the business report.
type ReportBuilder interface {
	BuildMonthlyReport(now time.Time) string
	ExportHistory(ctx context.Context, now time.Time) error
}

// Sender delivers the rendered report.
type Sender interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reporting ReportBuilder
	sender    Sender
	cfg       config.Config
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.Config, reportingSvc ReportBuilder, sender Sender, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := cfg.Reporting.Location()

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		reporting: reportingSvc,
		sender:    sender,
		cfg:       cfg,
		location:  loc,
		now:       time.Now,
		logger:    logger,
	}
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runScheduledReport); err != nil {
		return fmt.Errorf("schedule business report %q: %w", s.cfg.Reporting.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduledReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.SendReport(ctx); err != nil {
		s.logger.Error("scheduled report failed", zap.Error(err))
	}
}

// SendReport builds the report, sends it to the owner and exports the
// history table. Export is skipped when Sheets is not configured.
func (s *Scheduler) SendReport(ctx context.Context) error {
	now := s.now().In(s.location)
	s.logger.Info("generating business report")

	report := s.reporting.BuildMonthlyReport(now)

	var errs []error
	if s.cfg.WhatsApp.OwnerID == "" {
		s.logger.Warn("WHATSAPP_OWNER_ID not set, report not delivered")
	} else if err := s.sender.SendOutbound(ctx, models.OutboundMessageRequest{To: s.cfg.WhatsApp.OwnerID, Message: report}); err != nil {
		errs = append(errs, fmt.Errorf("send report: %w", err))
	}

	if err := s.reporting.ExportHistory(ctx, now); err != nil && !errors.Is(err, reporting.ErrExportDisabled) {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		metrics.ReportsSent.WithLabelValues("error").Inc()
		return err
	}
	metrics.ReportsSent.WithLabelValues("ok").Inc()
	s.logger.Info("business report completed")
	return nil
}
