// Package email renders and delivers the system's outbound mail and keeps the
// delivery log. Failed sends move to retry and are swept by the scheduler
// until the attempt limit.
package email

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	"github.com/automaten-pro/automaten-api/internal/observability"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

// Attachment is one file carried by an outgoing mail.
type Attachment struct {
	Filename string
	Content  []byte
}

// Sender is the SMTP transport.
type Sender interface {
	Send(to, subject, htmlBody string, attachments []Attachment) error
}

// Setting keys read by the service. Stored values override the configured
// defaults without a restart.
const (
	SettingEnabled  = "email.enabled"
	SettingReportTo = "email.report_to"
)

// Settings reads runtime-tunable mail options from the settings store.
type Settings interface {
	GetString(key, def string) string
	GetBool(key string, def bool) bool
}

// Service delivers emails and records every attempt.
type Service struct {
	sender      Sender
	logRepo     repository.EmailLogRepository
	salesRepo   repository.SalesRepository
	settings    Settings
	log         *logger.Logger
	reportTo    string
	maxAttempts int
	enabled     bool
}

// NewService builds the email service. With enabled false every mail is logged
// as failed without a send attempt, which keeps development setups quiet.
func NewService(
	sender Sender,
	logRepo repository.EmailLogRepository,
	salesRepo repository.SalesRepository,
	settings Settings,
	log *logger.Logger,
	reportTo string,
	maxAttempts int,
	enabled bool,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Service{
		sender:      sender,
		logRepo:     logRepo,
		salesRepo:   salesRepo,
		settings:    settings,
		log:         log,
		reportTo:    reportTo,
		maxAttempts: maxAttempts,
		enabled:     enabled,
	}
}

func (s *Service) currentEnabled() bool {
	if s.settings == nil {
		return s.enabled
	}
	return s.settings.GetBool(SettingEnabled, s.enabled)
}

func (s *Service) currentReportTo() string {
	if s.settings == nil {
		return s.reportTo
	}
	return s.settings.GetString(SettingReportTo, s.reportTo)
}

// deliver logs the attempt and sends. One failed attempt puts the row into
// retry; the scheduler sweep finishes the state machine.
func (s *Service) deliver(emailType, recipient, subject, body, referenceID string, attachments []Attachment) {
	now := time.Now()
	row := &entity.EmailLog{
		ID:          uuid.New().String(),
		Type:        emailType,
		Recipient:   recipient,
		Subject:     subject,
		Status:      entity.EmailStatusPending,
		ReferenceID: referenceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.logRepo.Create(row); err != nil {
		s.log.Error().Err(err).Str("type", emailType).Msg("email log write failed")
		return
	}

	if !s.currentEnabled() {
		_ = s.logRepo.UpdateStatus(row.ID, entity.EmailStatusFailed, "email disabled", 0)
		return
	}

	if err := s.sender.Send(recipient, subject, body, attachments); err != nil {
		s.log.Warn().Err(err).Str("type", emailType).Str("to", recipient).Msg("email send failed, queued for retry")
		_ = s.logRepo.UpdateStatus(row.ID, entity.EmailStatusRetry, err.Error(), 1)
		observability.EmailsTotal.WithLabelValues(entity.EmailStatusRetry).Inc()
		return
	}

	_ = s.logRepo.UpdateStatus(row.ID, entity.EmailStatusSent, "", 1)
	observability.EmailsTotal.WithLabelValues(entity.EmailStatusSent).Inc()

	if emailType == entity.EmailTypeSessionReceipt && referenceID != "" {
		if err := s.salesRepo.MarkEmailSent(referenceID); err != nil {
			s.log.Error().Err(err).Str("session_id", referenceID).Msg("mark session email sent failed")
		}
	}
}

// RetrySweep re-attempts every row in retry state. Rows that exhaust the
// attempt limit become failed for good.
func (s *Service) RetrySweep() {
	rows, err := s.logRepo.ListByStatus(entity.EmailStatusRetry, 50)
	if err != nil {
		s.log.Error().Err(err).Msg("email retry sweep query failed")
		return
	}
	for _, row := range rows {
		// neither body nor attachments are persisted; retries resend a short notice
		body, renderErr := render("periodic_report", map[string]any{
			"Title":       row.Subject,
			"PeriodLabel": "Delivery was delayed; see the dashboard for current figures.",
			"Revenue":     "-", "Margin": "-", "Sessions": "-", "Units": "-", "WasteCost": "-",
		})
		if renderErr != nil {
			continue
		}
		attempts := row.Attempts + 1
		if err := s.sender.Send(row.Recipient, row.Subject, body, nil); err != nil {
			status := entity.EmailStatusRetry
			if attempts >= s.maxAttempts {
				status = entity.EmailStatusFailed
				observability.EmailsTotal.WithLabelValues(entity.EmailStatusFailed).Inc()
			}
			_ = s.logRepo.UpdateStatus(row.ID, status, err.Error(), attempts)
			continue
		}
		_ = s.logRepo.UpdateStatus(row.ID, entity.EmailStatusSent, "", attempts)
		observability.EmailsTotal.WithLabelValues(entity.EmailStatusSent).Inc()
	}
}

// DisposalAlert sends the over-threshold disposal notice. Runs detached so the
// disposal request never waits on SMTP.
func (s *Service) DisposalAlert(entry *entity.WasteEntry, productName string) {
	go func() {
		body, err := render("waste_alert", map[string]any{
			"Title":       "Waste alert",
			"ProductName": productName,
			"Quantity":    entry.Quantity,
			"Reason":      entry.Reason,
			"TotalCost":   entry.TotalCost.StringFixed(2),
			"RecordedAt":  entry.CreatedAt.Format("2006-01-02 15:04"),
		})
		if err != nil {
			s.log.Error().Err(err).Msg("waste alert render failed")
			return
		}
		subject := fmt.Sprintf("Waste alert: %s (%s EUR)", productName, entry.TotalCost.StringFixed(2))
		s.deliver(entity.EmailTypeWasteAlert, s.currentReportTo(), subject, body, entry.ID, nil)
	}()
}

// receiptItem is the per-line view in the session receipt.
type receiptItem struct {
	Name      string
	Quantity  int
	LineTotal string
}

// SessionClosed sends the session summary. Runs detached.
func (s *Service) SessionClosed(session *entity.SalesSession, items []*entity.SalesItem) {
	go func() {
		lines := make([]receiptItem, 0, len(items))
		for _, it := range items {
			lines = append(lines, receiptItem{
				Name:      it.ProductID,
				Quantity:  it.Quantity,
				LineTotal: it.LineTotal.StringFixed(2),
			})
		}
		body, err := render("session_receipt", map[string]any{
			"Title":        "Sales session closed",
			"SessionID":    session.ID,
			"MachineID":    session.MachineID,
			"Items":        lines,
			"TotalNet":     session.TotalNet.StringFixed(2),
			"TotalVAT":     session.TotalVAT.StringFixed(2),
			"TotalDeposit": session.TotalDeposit.StringFixed(2),
			"TotalGross":   session.TotalGross.StringFixed(2),
		})
		if err != nil {
			s.log.Error().Err(err).Msg("session receipt render failed")
			return
		}
		subject := fmt.Sprintf("Session closed: machine %s, %s EUR", session.MachineID, session.TotalGross.StringFixed(2))
		s.deliver(entity.EmailTypeSessionReceipt, s.currentReportTo(), subject, body, session.ID, nil)
	}()
}

// ReportFigures is the payload of the periodic report mails.
type ReportFigures struct {
	PeriodLabel string
	Revenue     string
	Margin      string
	Sessions    int
	Units       int
	WasteCost   string
}

// SendPeriodicReport sends a daily, weekly or monthly report mail, optionally
// with the rendered report file attached.
func (s *Service) SendPeriodicReport(emailType, subject string, figures ReportFigures, attachments ...Attachment) {
	body, err := render("periodic_report", map[string]any{
		"Title":       subject,
		"PeriodLabel": figures.PeriodLabel,
		"Revenue":     figures.Revenue,
		"Margin":      figures.Margin,
		"Sessions":    figures.Sessions,
		"Units":       figures.Units,
		"WasteCost":   figures.WasteCost,
	})
	if err != nil {
		s.log.Error().Err(err).Str("type", emailType).Msg("report render failed")
		return
	}
	s.deliver(emailType, s.currentReportTo(), subject, body, "", attachments)
}

// SendLowStockAlert sends the low stock sweep result.
func (s *Service) SendLowStockAlert(products []*entity.Product) {
	if len(products) == 0 {
		return
	}
	body, err := render("low_stock", map[string]any{
		"Title":    "Low stock alert",
		"Products": products,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("low stock render failed")
		return
	}
	subject := fmt.Sprintf("Low stock: %d products below minimum", len(products))
	s.deliver(entity.EmailTypeLowStockAlert, s.currentReportTo(), subject, body, "", nil)
}

// ListRecent returns the latest delivery log rows.
func (s *Service) ListRecent(limit int) ([]*entity.EmailLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.logRepo.ListRecent(limit)
}
