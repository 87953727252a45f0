package records

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/suraksha/internal/domain/models"
)

// MonthKey formats t as a YYYY-MM month key in t's own location.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthKeyOf returns the month key of a YYYY-MM-DD service date: its first
// seven characters, or the whole string when shorter. Malformed dates are
// grouped as-is rather than rejected.
func MonthKeyOf(serviceDate string) string {
	if len(serviceDate) < 7 {
		return serviceDate
	}
	return serviceDate[:7]
}

// Aggregate rolls up the records whose service date falls in month.
func Aggregate(records []models.ServiceRecord, month string) models.MonthlyStats {
	acc := newAccumulator(month)
	for _, r := range records {
		if MonthKeyOf(r.ServiceDate) == month {
			acc.add(r)
		}
	}
	return acc.stats()
}

// History rolls up records per distinct month key, newest month first.
// Months without records are not emitted.
func History(records []models.ServiceRecord) []models.MonthlyStats {
	byMonth := make(map[string]*accumulator)
	for _, r := range records {
		month := MonthKeyOf(r.ServiceDate)
		acc, ok := byMonth[month]
		if !ok {
			acc = newAccumulator(month)
			byMonth[month] = acc
		}
		acc.add(r)
	}

	history := make([]models.MonthlyStats, 0, len(byMonth))
	for _, acc := range byMonth {
		if acc.count == 0 {
			continue
		}
		history = append(history, acc.stats())
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Month > history[j].Month })
	return history
}

// accumulator sums prices exactly so totals do not drift with float addition.
type accumulator struct {
	month     string
	income    decimal.Decimal
	breakdown models.ServiceBreakdown
	count     int
}

func newAccumulator(month string) *accumulator {
	return &accumulator{month: month, income: decimal.Zero}
}

// add ignores records with an unknown service type so that the customer
// count always equals the breakdown total.
func (a *accumulator) add(r models.ServiceRecord) {
	switch r.ServiceType {
	case models.ServiceSump:
		a.breakdown.Sump++
	case models.ServiceTank:
		a.breakdown.Tank++
	case models.ServiceBoth:
		a.breakdown.Both++
	default:
		return
	}
	a.count++
	a.income = a.income.Add(decimal.NewFromFloat(r.Price))
}

func (a *accumulator) stats() models.MonthlyStats {
	return models.MonthlyStats{
		Month:            a.month,
		TotalIncome:      a.income.InexactFloat64(),
		CustomersServed:  a.count,
		ServiceBreakdown: a.breakdown,
	}
}
