package schedule

import "time"

// Index is an in-memory view over a set of sessions, answering the
// lookups the calendar and ledger screens need. It never rejects
// overlapping sessions: overlap is a rendering concern, not an error.
type Index struct {
	sessions []Session
}

func NewIndex(sessions []Session) Index {
	return Index{sessions: sessions}
}

func (ix Index) All() []Session { return ix.sessions }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InWeek returns sessions whose calendar day falls within the week
// starting at weekStart (Monday .. Sunday, inclusive). Membership ignores
// the time-of-day; placement on the grid does not.
func (ix Index) InWeek(weekStart time.Time) []Session {
	var out []Session
	for _, s := range ix.sessions {
		for d := 0; d < daysPerWeek; d++ {
			if sameDay(s.StartsAt, weekStart.AddDate(0, 0, d)) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// FindAt returns the session starting exactly at hour:00 on the given
// day. Sessions starting at half past are invisible to this lookup: the
// slot-guarded creation path only works in whole-hour steps even though
// the grid itself places half-hour starts.
func (ix Index) FindAt(day time.Time, hour int) (Session, bool) {
	for _, s := range ix.sessions {
		if sameDay(s.StartsAt, day) && s.StartsAt.Hour() == hour && s.StartsAt.Minute() == 0 {
			return s, true
		}
	}
	return Session{}, false
}

// ForStudent returns sessions the student takes part in.
func (ix Index) ForStudent(studentID string) []Session {
	var out []Session
	for _, s := range ix.sessions {
		if s.HasParticipant(studentID) {
			out = append(out, s)
		}
	}
	return out
}

// OfKind returns sessions of one class type.
func (ix Index) OfKind(kind Kind) []Session {
	var out []Session
	for _, s := range ix.sessions {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// InMonth returns sessions falling within the calendar month.
func (ix Index) InMonth(year int, month time.Month) []Session {
	var out []Session
	for _, s := range ix.sessions {
		if s.StartsAt.Year() == year && s.StartsAt.Month() == month {
			out = append(out, s)
		}
	}
	return out
}
