package reporting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/domain/models"
	repo "github.com/mamadbah2/suraksha/internal/repository/sheets"
)

const (
	monthLayout     = "2006-01"
	dateLayout      = "2006-01-02"
	historyRange    = "Monthly!A:F"
	reportLogRange  = "ReportLog!A:G"
	historyInReport = 3
)

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("sheets export not configured")

// StatsSource is the part of the record store reports are built from.
type StatsSource interface {
	CurrentMonthStats(now time.Time) models.MonthlyStats
	MonthlyHistory() []models.MonthlyStats
}

// Service renders business summaries and exports them to Google Sheets.
type Service struct {
	stats  StatsSource
	sheets repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. sheets may be nil.
func NewService(stats StatsSource, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stats: stats, sheets: sheets, logger: logger}
}

// BuildMonthlyReport summarizes the month now falls in followed by the most
// recent earlier months that have records.
func (s *Service) BuildMonthlyReport(now time.Time) string {
	current := s.stats.CurrentMonthStats(now)

	var b strings.Builder
	fmt.Fprintf(&b, "Business report (%s)\n", now.Format(dateLayout))
	b.WriteString(FormatStats(current))

	previous := make([]models.MonthlyStats, 0, historyInReport)
	for _, m := range s.stats.MonthlyHistory() {
		if m.Month >= current.Month {
			continue
		}
		previous = append(previous, m)
		if len(previous) == historyInReport {
			break
		}
	}
	if len(previous) > 0 {
		b.WriteString("\n\nEarlier months:\n")
		b.WriteString(FormatHistory(previous))
	}
	return b.String()
}

// ExportHistory rewrites the monthly history table and appends a report log row.
func (s *Service) ExportHistory(ctx context.Context, now time.Time) error {
	if s.sheets == nil {
		return ErrExportDisabled
	}

	history := s.stats.MonthlyHistory()
	rows := make([][]interface{}, 0, len(history)+1)
	rows = append(rows, []interface{}{"Month", "Total income", "Customers", "Sump", "Tank", "Both"})
	for _, m := range history {
		rows = append(rows, []interface{}{m.Month, m.TotalIncome, m.CustomersServed,
			m.ServiceBreakdown.Sump, m.ServiceBreakdown.Tank, m.ServiceBreakdown.Both})
	}
	if err := s.sheets.ReplaceRange(ctx, historyRange, rows); err != nil {
		return fmt.Errorf("export monthly history: %w", err)
	}

	current := s.stats.CurrentMonthStats(now)
	logRow := []interface{}{now.Format(time.RFC3339), current.Month, current.TotalIncome, current.CustomersServed,
		current.ServiceBreakdown.Sump, current.ServiceBreakdown.Tank, current.ServiceBreakdown.Both}
	if err := s.sheets.AppendRow(ctx, reportLogRange, logRow); err != nil {
		return fmt.Errorf("append report log: %w", err)
	}

	s.logger.Info("monthly history exported", zap.Int("months", len(history)))
	return nil
}

// FormatStats renders one month as a short multi-line text block.
func FormatStats(m models.MonthlyStats) string {
	if m.CustomersServed == 0 {
		return fmt.Sprintf("%s: no services recorded.", MonthLabel(m.Month))
	}
	return fmt.Sprintf("%s: income %s from %d customers (sump %d, tank %d, both %d).",
		MonthLabel(m.Month), formatAmount(m.TotalIncome), m.CustomersServed,
		m.ServiceBreakdown.Sump, m.ServiceBreakdown.Tank, m.ServiceBreakdown.Both)
}

// FormatHistory renders one line per month.
func FormatHistory(history []models.MonthlyStats) string {
	if len(history) == 0 {
		return "No services recorded yet."
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, "- "+FormatStats(m))
	}
	return strings.Join(lines, "\n")
}

// MonthLabel turns a YYYY-MM key into "January 2024", leaving malformed keys as-is.
func MonthLabel(month string) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
