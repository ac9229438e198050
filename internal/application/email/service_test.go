package email

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

type memEmailLogs struct {
	items map[string]*entity.EmailLog
	order []string
}

func newMemEmailLogs() *memEmailLogs {
	return &memEmailLogs{items: map[string]*entity.EmailLog{}}
}

func (m *memEmailLogs) Create(row *entity.EmailLog) error {
	cp := *row
	m.items[row.ID] = &cp
	m.order = append(m.order, row.ID)
	return nil
}

func (m *memEmailLogs) UpdateStatus(id, status, lastError string, attempts int) error {
	row, ok := m.items[id]
	if !ok {
		return nil
	}
	row.Status = status
	row.LastError = lastError
	row.Attempts = attempts
	row.UpdatedAt = time.Now()
	return nil
}

func (m *memEmailLogs) ListByStatus(status string, limit int) ([]*entity.EmailLog, error) {
	out := []*entity.EmailLog{}
	for _, id := range m.order {
		if m.items[id].Status == status && len(out) < limit {
			out = append(out, m.items[id])
		}
	}
	return out, nil
}

func (m *memEmailLogs) ListRecent(limit int) ([]*entity.EmailLog, error) {
	out := []*entity.EmailLog{}
	for _, id := range m.order {
		if len(out) < limit {
			out = append(out, m.items[id])
		}
	}
	return out, nil
}

func (m *memEmailLogs) only() *entity.EmailLog {
	if len(m.order) != 1 {
		return nil
	}
	return m.items[m.order[0]]
}

// failingSender fails the first failures sends, then succeeds.
type failingSender struct {
	failures    int
	sent        []string
	attachments [][]Attachment
}

func (s *failingSender) Send(to, subject, body string, attachments []Attachment) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("dial tcp: connection refused")
	}
	s.sent = append(s.sent, subject)
	s.attachments = append(s.attachments, attachments)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func figures() ReportFigures {
	return ReportFigures{
		PeriodLabel: "Figures for 2026-08-30",
		Revenue:     "120.50",
		Margin:      "48.20",
		Sessions:    3,
		Units:       85,
		WasteCost:   "4.75",
	}
}

func TestSendPeriodicReportSuccess(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())

	require.Len(t, sender.sent, 1)
	row := logs.only()
	require.NotNil(t, row)
	assert.Equal(t, entity.EmailStatusSent, row.Status)
	assert.Equal(t, 1, row.Attempts)
	assert.Equal(t, entity.EmailTypeDailyReport, row.Type)
	assert.Equal(t, "owner@example.com", row.Recipient)
}

func TestSendPeriodicReportCarriesAttachment(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeWeeklyReport, "Weekly report", figures(),
		Attachment{Filename: "sales_report.pdf", Content: []byte("%PDF-1.7")})

	require.Len(t, sender.attachments, 1)
	require.Len(t, sender.attachments[0], 1)
	assert.Equal(t, "sales_report.pdf", sender.attachments[0][0].Filename)
	assert.Equal(t, []byte("%PDF-1.7"), sender.attachments[0][0].Content)
	assert.Equal(t, entity.EmailStatusSent, logs.only().Status)
}

func TestSendFailureMovesToRetry(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{failures: 10}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())

	row := logs.only()
	require.NotNil(t, row)
	assert.Equal(t, entity.EmailStatusRetry, row.Status)
	assert.Equal(t, 1, row.Attempts)
	assert.Contains(t, row.LastError, "connection refused")
}

func TestRetrySweepEventuallySends(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{failures: 2}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())
	require.Equal(t, entity.EmailStatusRetry, logs.only().Status)

	// second attempt still fails
	svc.RetrySweep()
	assert.Equal(t, entity.EmailStatusRetry, logs.only().Status)
	assert.Equal(t, 2, logs.only().Attempts)

	// third attempt succeeds
	svc.RetrySweep()
	assert.Equal(t, entity.EmailStatusSent, logs.only().Status)
	assert.Equal(t, 3, logs.only().Attempts)
}

func TestRetrySweepGivesUpAtAttemptLimit(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{failures: 100}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())
	svc.RetrySweep()
	svc.RetrySweep()

	row := logs.only()
	assert.Equal(t, entity.EmailStatusFailed, row.Status)
	assert.Equal(t, 3, row.Attempts)

	// failed rows are terminal, further sweeps skip them
	svc.RetrySweep()
	assert.Equal(t, 3, row.Attempts)
}

func TestDisabledServiceNeverSends(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{}
	svc := NewService(sender, logs, nil, nil, testLogger(), "owner@example.com", 3, false)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())

	assert.Empty(t, sender.sent)
	assert.Equal(t, entity.EmailStatusFailed, logs.only().Status)
}

type stubSettings struct {
	strings map[string]string
	bools   map[string]bool
}

func (s *stubSettings) GetString(key, def string) string {
	if v, ok := s.strings[key]; ok {
		return v
	}
	return def
}

func (s *stubSettings) GetBool(key string, def bool) bool {
	if v, ok := s.bools[key]; ok {
		return v
	}
	return def
}

func TestSettingsOverrideRecipientAndEnabled(t *testing.T) {
	logs := newMemEmailLogs()
	sender := &failingSender{}
	settings := &stubSettings{strings: map[string]string{SettingReportTo: "ops@example.com"}}
	svc := NewService(sender, logs, nil, settings, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())
	assert.Equal(t, "ops@example.com", logs.only().Recipient)

	logs = newMemEmailLogs()
	sender = &failingSender{}
	settings = &stubSettings{bools: map[string]bool{SettingEnabled: false}}
	svc = NewService(sender, logs, nil, settings, testLogger(), "owner@example.com", 3, true)

	svc.SendPeriodicReport(entity.EmailTypeDailyReport, "Daily report", figures())
	assert.Empty(t, sender.sent, "stored email.enabled=false wins over the config default")
	assert.Equal(t, entity.EmailStatusFailed, logs.only().Status)
}

func TestTemplatesRender(t *testing.T) {
	body, err := render("waste_alert", map[string]any{
		"Title":       "Waste alert",
		"ProductName": "Cola 0.33l",
		"Quantity":    3,
		"Reason":      "expired",
		"TotalCost":   "2.25",
		"RecordedAt":  "2026-08-31 10:00",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Cola 0.33l")
	assert.Contains(t, body, "2.25")

	body, err = render("session_receipt", map[string]any{
		"Title":     "Sales session closed",
		"SessionID": "s1", "MachineID": "m1",
		"Items":    []receiptItem{{Name: "Cola", Quantity: 2, LineTotal: "3.50"}},
		"TotalNet": "3.36", "TotalVAT": "0.64", "TotalDeposit": "0.75", "TotalGross": "4.75",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "4.75")
	assert.True(t, strings.Contains(body, "Cola"))

	body, err = render("low_stock", map[string]any{
		"Title": "Low stock alert",
		"Products": []*entity.Product{
			{Name: "Water 0.5l", CurrentStock: 1, MinStock: 5},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Water 0.5l")
}

func TestTemplateEscapesHTML(t *testing.T) {
	body, err := render("waste_alert", map[string]any{
		"Title":       "Waste alert",
		"ProductName": "<script>alert(1)</script>",
		"Quantity":    1,
		"Reason":      "expired",
		"TotalCost":   "1.00",
		"RecordedAt":  "2026-08-31 10:00",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
