package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/email"
	"github.com/automaten-pro/automaten-api/internal/application/report"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// Scheduler drives the periodic background jobs: report mails, the low
// stock sweep and the email retry sweep.
type Scheduler struct {
	reportUC    *report.UseCase
	exportUC    *report.ExportUseCase
	mailSvc     *email.Service
	productRepo repository.ProductRepository
	log         *logger.Logger

	dailyHour     int
	retryInterval time.Duration
}

// New builds the scheduler. dailyHour is the local hour for the daily
// report, retryMinutes the pause between email retry sweeps.
func New(
	reportUC *report.UseCase,
	exportUC *report.ExportUseCase,
	mailSvc *email.Service,
	productRepo repository.ProductRepository,
	log *logger.Logger,
	dailyHour int,
	retryMinutes int,
) *Scheduler {
	if dailyHour < 0 || dailyHour > 23 {
		dailyHour = 6
	}
	if retryMinutes <= 0 {
		retryMinutes = 15
	}
	return &Scheduler{
		reportUC:      reportUC,
		exportUC:      exportUC,
		mailSvc:       mailSvc,
		productRepo:   productRepo,
		log:           log,
		dailyHour:     dailyHour,
		retryInterval: time.Duration(retryMinutes) * time.Minute,
	}
}

// Start launches the background loops. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.reportLoop(ctx)
	go s.retryLoop(ctx)
}

// reportLoop wakes once per minute and fires the periodic jobs when their
// moment arrives. Minute granularity keeps the loop restart-safe without
// persisting a schedule.
func (s *Scheduler) reportLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	var lastRun time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Hour() != s.dailyHour || now.Minute() != 0 {
				continue
			}
			if !lastRun.IsZero() && now.Sub(lastRun) < time.Hour {
				continue
			}
			lastRun = now
			s.runDaily(ctx)
			if now.Weekday() == time.Monday {
				s.runPeriodic(ctx, entity.EmailTypeWeeklyReport, "Weekly report", 7)
			}
			if now.Day() == 1 {
				s.runPeriodic(ctx, entity.EmailTypeMonthlyReport, "Monthly report", 30)
			}
		}
	}
}

func (s *Scheduler) retryLoop(ctx context.Context) {
	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mailSvc.RetrySweep()
		}
	}
}

// runDaily sends the daily report and the low stock sweep.
func (s *Scheduler) runDaily(ctx context.Context) {
	s.runPeriodic(ctx, entity.EmailTypeDailyReport, "Daily report", 1)

	low, err := s.productRepo.ListLowStock()
	if err != nil {
		s.log.Error().Err(err).Msg("low stock sweep failed")
		return
	}
	s.mailSvc.SendLowStockAlert(low)
}

func (s *Scheduler) runPeriodic(ctx context.Context, emailType, subject string, periodDays int) {
	kpis, err := s.reportUC.GetKPIs(ctx, periodDays)
	if err != nil {
		s.log.Error().Err(err).Str("type", emailType).Msg("report figures failed")
		return
	}
	margin := kpis.GrossRevenue.Mul(kpis.GrossMarginPct).Div(hundred)
	s.mailSvc.SendPeriodicReport(emailType, subject, email.ReportFigures{
		PeriodLabel: periodLabel(periodDays),
		Revenue:     kpis.GrossRevenue.StringFixed(2),
		Margin:      margin.StringFixed(2),
		Sessions:    kpis.Sessions,
		Units:       kpis.UnitsSold,
		WasteCost:   kpis.GrossRevenue.Mul(kpis.WasteRatioPct).Div(hundred).StringFixed(2),
	}, s.reportAttachment(ctx, periodDays)...)
	s.log.Info().Str("type", emailType).Msg("periodic report dispatched")
}

// reportAttachment renders the period's sales report as PDF for the mail.
// A period without sessions is normal and just means no attachment.
func (s *Scheduler) reportAttachment(ctx context.Context, periodDays int) []email.Attachment {
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	out, err := s.exportUC.ExportSalesReport(ctx, from, to, report.FormatPDF)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSalesData) {
			s.log.Error().Err(err).Msg("report attachment render failed")
		}
		return nil
	}
	data, err := os.ReadFile(out.Path)
	if err != nil {
		s.log.Error().Err(err).Str("path", out.Path).Msg("report attachment read failed")
		return nil
	}
	return []email.Attachment{{Filename: filepath.Base(out.Path), Content: data}}
}

func periodLabel(days int) string {
	switch days {
	case 1:
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	case 7:
		return "last 7 days"
	default:
		return fmt.Sprintf("last %d days", days)
	}
}
