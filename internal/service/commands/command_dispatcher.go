package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/domain/models"
	"github.com/mamadbah2/suraksha/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	monthLayout       = "2006-01"
	maxSearchResults  = 10
	maxHistoryEntries = 6
)

// HelpText lists the commands the owner can send.
const HelpText = "Commands:\n/stats [YYYY-MM] - income and customers for a month\n/history - recent monthly totals\n/search <name, phone or area> - find customers"

// RecordQueries is the read side of the record store used by commands.
type RecordQueries interface {
	CurrentMonthStats(now time.Time) models.MonthlyStats
	StatsForMonth(month string) models.MonthlyStats
	MonthlyHistory() []models.MonthlyStats
	Search(query string) []models.ServiceRecord
}

// Dispatcher answers parsed owner commands.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	records  RecordQueries
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

// NewService constructs a command dispatcher. Months are computed in loc.
func NewService(records RecordQueries, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		records:  records,
		logger:   logger,
		now:      time.Now,
		location: loc,
	}
}

// HandleCommand produces the text reply for cmd.
func (s *Service) HandleCommand(_ context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandStats:
		return s.handleStats(cmd)
	case models.CommandHistory:
		history := s.records.MonthlyHistory()
		if len(history) > maxHistoryEntries {
			history = history[:maxHistoryEntries]
		}
		return "Monthly history\n" + reporting.FormatHistory(history), nil
	case models.CommandSearch:
		return s.handleSearch(cmd)
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) handleStats(cmd models.Command) (string, error) {
	if len(cmd.Args) == 0 {
		return reporting.FormatStats(s.records.CurrentMonthStats(s.now().In(s.location))), nil
	}
	month := cmd.Args[0]
	if _, err := time.Parse(monthLayout, month); err != nil {
		return "", fmt.Errorf("%w: month must look like 2024-01", ErrInvalidArguments)
	}
	return reporting.FormatStats(s.records.StatsForMonth(month)), nil
}

func (s *Service) handleSearch(cmd models.Command) (string, error) {
	if len(cmd.Args) == 0 {
		return "", fmt.Errorf("%w: search needs a name, phone or area", ErrInvalidArguments)
	}
	query := strings.Join(cmd.Args, " ")
	found := s.records.Search(query)
	if len(found) == 0 {
		return fmt.Sprintf("No customers match %q.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d customer(s) match %q:", len(found), query)
	for i, r := range found {
		if i == maxSearchResults {
			fmt.Fprintf(&b, "\n...and %d more", len(found)-maxSearchResults)
			break
		}
		fmt.Fprintf(&b, "\n- %s, %s, %s (%s %s)", r.Name, r.Phone, r.Address, r.ServiceDate, r.ServiceType)
	}
	return b.String(), nil
}
