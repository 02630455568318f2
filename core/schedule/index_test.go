package schedule

import (
	"testing"
	"time"
)

func testIndex() Index {
	mk := func(id string, kind Kind, participants []string, at time.Time) Session {
		return Session{ID: id, Kind: kind, Participants: participants, StartsAt: at, DurationHours: 1}
	}
	day := func(d, hour, min int) time.Time {
		return time.Date(2024, time.March, d, hour, min, 0, 0, time.UTC)
	}

	return NewIndex([]Session{
		mk("a", Individual, []string{"s1"}, day(4, 9, 0)),   // Monday 09:00
		mk("b", Group, []string{"s1", "s2"}, day(4, 10, 30)), // Monday 10:30
		mk("c", Individual, []string{"s2"}, day(10, 16, 0)),  // Sunday 16:00
		mk("d", Individual, []string{"s3"}, day(11, 9, 0)),   // next Monday
	})
}

func TestIndex_InWeek(t *testing.T) {
	ix := testIndex()
	weekStart := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	got := ix.InWeek(weekStart)
	if len(got) != 3 {
		t.Fatalf("InWeek() returned %d sessions, want 3", len(got))
	}
	for _, s := range got {
		if s.ID == "d" {
			t.Error("InWeek() must not include the following week's session")
		}
	}
}

func TestIndex_FindAt(t *testing.T) {
	ix := testIndex()
	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hour   int
		wantID string
		wantOK bool
	}{
		{name: "whole-hour start found", hour: 9, wantID: "a", wantOK: true},
		{name: "empty slot", hour: 12, wantOK: false},
		// a session starting at half past is invisible to the lookup,
		// its hour matches only at minute 0
		{name: "half-past start not found at its hour", hour: 10, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ix.FindAt(monday, tt.hour)
			if ok != tt.wantOK {
				t.Fatalf("FindAt() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && s.ID != tt.wantID {
				t.Errorf("FindAt() ID = %s, want %s", s.ID, tt.wantID)
			}
		})
	}
}

func TestIndex_ForStudent(t *testing.T) {
	ix := testIndex()

	got := ix.ForStudent("s1")
	if len(got) != 2 {
		t.Fatalf("ForStudent() returned %d sessions, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("ForStudent() = [%s %s], want [a b]", got[0].ID, got[1].ID)
	}
}

func TestIndex_OfKind(t *testing.T) {
	ix := testIndex()

	if got := ix.OfKind(Group); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("OfKind(Group) = %v, want [b]", got)
	}
	if got := ix.OfKind(Individual); len(got) != 3 {
		t.Errorf("OfKind(Individual) returned %d sessions, want 3", len(got))
	}
}

func TestIndex_InMonth(t *testing.T) {
	ix := NewIndex(append(testIndex().All(), Session{
		ID:       "e",
		Kind:     Individual,
		StartsAt: time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC),
	}))

	got := ix.InMonth(2024, time.March)
	if len(got) != 4 {
		t.Fatalf("InMonth() returned %d sessions, want 4", len(got))
	}
	for _, s := range got {
		if s.ID == "e" {
			t.Error("InMonth() must not include April's session")
		}
	}
}
