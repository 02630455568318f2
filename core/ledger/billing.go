package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core/schedule"
)

// Aggregator computes monetary totals from either ledger source: weekly
// records or raw class sessions. Both share one rate resolver so the two
// billing views can never drift apart. Sums keep full decimal precision;
// rounding to 2 places happens at the display boundary only.
type Aggregator struct {
	overrides map[string]StudentRate
}

func NewAggregator(overrides []StudentRate) *Aggregator {
	m := make(map[string]StudentRate, len(overrides))
	for _, r := range overrides {
		m[r.StudentID] = r
	}
	return &Aggregator{overrides: m}
}

func defaultRate(kind schedule.Kind) float64 {
	if kind == schedule.Group {
		return DefaultGroupRate
	}
	return DefaultIndividualRate
}

// Rate resolves the hourly price for one student and class type:
// student override -> the stored row rate -> default. NULL is the only
// trigger to fall through; a stored 0 is kept.
func (a *Aggregator) Rate(studentID string, kind schedule.Kind, stored null.Float64) float64 {
	if o, ok := a.overrides[studentID]; ok {
		ovr := o.Individual
		if kind == schedule.Group {
			ovr = o.Group
		}
		if ovr.Valid {
			return ovr.Float64
		}
	}
	if stored.Valid {
		return stored.Float64
	}
	return defaultRate(kind)
}

// SessionTotalFor prices one session for one participant:
// duration x resolved rate.
func (a *Aggregator) SessionTotalFor(studentID string, s schedule.Session) decimal.Decimal {
	rate := a.Rate(studentID, s.Kind, s.Rate)
	return decimal.NewFromFloat(s.DurationHours).Mul(decimal.NewFromFloat(rate))
}

// WeekTotal prices one weekly record: each class type contributes
// hours x its resolved rate, independently.
func (a *Aggregator) WeekTotal(rec WeeklyRecord) decimal.Decimal {
	ind := decimal.NewFromFloat(rec.IndividualHours).
		Mul(decimal.NewFromFloat(a.Rate(rec.StudentID, schedule.Individual, rec.IndividualRate)))
	grp := decimal.NewFromFloat(rec.GroupHours).
		Mul(decimal.NewFromFloat(a.Rate(rec.StudentID, schedule.Group, rec.GroupRate)))
	return ind.Add(grp)
}

// StudentMonthTotal sums WeekTotal over the student's records for a month.
func (a *Aggregator) StudentMonthTotal(studentID string, records []WeeklyRecord, month, year int) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if rec.StudentID == studentID && rec.Month == month && rec.Year == year {
			total = total.Add(a.WeekTotal(rec))
		}
	}
	return total
}

// StudentMonthSessionTotal is the session-ledger view of the same number:
// it sums SessionTotalFor over the student's sessions in the calendar
// month, optionally filtered by class type (no kinds = both).
func (a *Aggregator) StudentMonthSessionTotal(
	studentID string, ix schedule.Index, year int, month time.Month, kinds ...schedule.Kind,
) decimal.Decimal {
	total := decimal.Zero
	for _, s := range schedule.NewIndex(ix.InMonth(year, month)).ForStudent(studentID) {
		if len(kinds) > 0 && !kindIn(s.Kind, kinds) {
			continue
		}
		total = total.Add(a.SessionTotalFor(studentID, s))
	}
	return total
}

func kindIn(k schedule.Kind, kinds []schedule.Kind) bool {
	for _, kk := range kinds {
		if k == kk {
			return true
		}
	}
	return false
}

// MonthGrandTotal sums StudentMonthTotal over the given students.
func (a *Aggregator) MonthGrandTotal(studentIDs []string, records []WeeklyRecord, month, year int) decimal.Decimal {
	total := decimal.Zero
	for _, id := range studentIDs {
		total = total.Add(a.StudentMonthTotal(id, records, month, year))
	}
	return total
}
