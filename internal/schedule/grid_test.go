package schedule

import (
	"testing"
	"time"

	"github.com/kingluffyxx/portfolio/internal/calcom"
)

func TestGenerateCalendarDays_March2025NoAvailability(t *testing.T) {
	// March 1, 2025 falls on a Saturday, so the grid starts Monday Feb 24.
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)

	days := GenerateCalendarDays(march, nil, nil, now)
	if len(days) != 42 {
		t.Fatalf("len(days) = %d, want 42", len(days))
	}
	if got := DateKey(days[0].Date); got != "2025-02-24" {
		t.Fatalf("grid start = %s, want 2025-02-24", got)
	}

	inMonth := 0
	for _, day := range days {
		if !day.Disabled {
			t.Fatalf("day %s should be disabled without availability", DateKey(day.Date))
		}
		if day.HasSlots {
			t.Fatalf("day %s should have no slots", DateKey(day.Date))
		}
		if day.IsCurrentMonth {
			inMonth++
			if day.Date.Month() != time.March {
				t.Fatalf("day %s marked current month", DateKey(day.Date))
			}
		}
	}
	if inMonth != 31 {
		t.Fatalf("current-month days = %d, want 31", inMonth)
	}
}

func TestGenerateCalendarDays_AlwaysSixWeeks(t *testing.T) {
	// Spot-check months with different start weekdays and lengths.
	months := []time.Time{
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), // starts Saturday, 28 days
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),     // starts Sunday
		time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), // starts Monday
		time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Now()
	for _, month := range months {
		days := GenerateCalendarDays(month, nil, nil, now)
		if len(days) != 42 {
			t.Fatalf("%s: len(days) = %d, want 42", month.Format("2006-01"), len(days))
		}
	}
}

func TestGenerateCalendarDays_HasSlotsRequiresCurrentMonthAndNonEmpty(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	availability := calcom.MonthSlots{
		"2025-03-10": {{Time: "2025-03-10T09:00:00Z"}},
		"2025-03-11": {}, // present but empty
		"2025-02-25": {{Time: "2025-02-25T09:00:00Z"}}, // out of displayed month
	}

	days := GenerateCalendarDays(march, nil, availability, now)
	byKey := make(map[string]CalendarDay, len(days))
	for _, d := range days {
		byKey[DateKey(d.Date)] = d
	}

	if d := byKey["2025-03-10"]; !d.HasSlots || d.Disabled {
		t.Fatalf("2025-03-10 = %+v, want selectable with slots", d)
	}
	if d := byKey["2025-03-11"]; d.HasSlots || !d.Disabled {
		t.Fatalf("2025-03-11 = %+v, empty slot list must not count", d)
	}
	if d := byKey["2025-02-25"]; d.HasSlots || !d.Disabled {
		t.Fatalf("2025-02-25 = %+v, out-of-month availability must not count", d)
	}
}

func TestGenerateCalendarDays_PastAndSelected(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC)
	selected := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	availability := calcom.MonthSlots{
		"2025-03-10": {{Time: "2025-03-10T09:00:00Z"}},
		"2025-03-15": {{Time: "2025-03-15T09:00:00Z"}},
		"2025-03-20": {{Time: "2025-03-20T09:00:00Z"}},
	}

	days := GenerateCalendarDays(march, &selected, availability, now)
	byKey := make(map[string]CalendarDay, len(days))
	for _, d := range days {
		byKey[DateKey(d.Date)] = d
	}

	if d := byKey["2025-03-10"]; !d.Disabled {
		t.Fatalf("2025-03-10 is past, should be disabled: %+v", d)
	}
	// Today itself is not past.
	if d := byKey["2025-03-15"]; d.Disabled {
		t.Fatalf("2025-03-15 is today with slots, should be selectable: %+v", d)
	}
	if d := byKey["2025-03-20"]; !d.IsSelected {
		t.Fatalf("2025-03-20 should be selected: %+v", d)
	}
	if d := byKey["2025-03-21"]; d.IsSelected {
		t.Fatalf("2025-03-21 should not be selected: %+v", d)
	}
}

func TestMonthDateRange(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	start, end := MonthDateRange(march)
	if start != "2025-02-24" {
		t.Fatalf("start = %s, want 2025-02-24", start)
	}
	if end != "2025-04-06" {
		t.Fatalf("end = %s, want 2025-04-06", end)
	}

	// A month starting on Monday pads only at the tail.
	sept, _ := MonthDateRange(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
	if sept != "2025-09-01" {
		t.Fatalf("september start = %s, want 2025-09-01", sept)
	}
}

func TestSlotLocalDate(t *testing.T) {
	cases := []struct {
		instant  string
		timezone string
		want     string
	}{
		// 23:30 UTC is 19:30 EDT, still March 15 in New York.
		{"2025-03-15T23:30:00Z", "America/New_York", "2025-03-15"},
		// 03:30 UTC on the 16th is 23:30 EDT on the 15th.
		{"2025-03-16T03:30:00Z", "America/New_York", "2025-03-15"},
		// And the other direction: late UTC evening rolls forward in UTC+14.
		{"2025-03-15T23:30:00Z", "Pacific/Kiritimati", "2025-03-16"},
		{"2025-03-15T23:30:00Z", "UTC", "2025-03-15"},
		// Unknown zone falls back to the default Europe/Paris.
		{"2025-03-15T12:00:00Z", "Not/A_Zone", "2025-03-15"},
	}
	for _, tc := range cases {
		if got := SlotLocalDate(tc.instant, tc.timezone); got != tc.want {
			t.Errorf("SlotLocalDate(%s, %s) = %s, want %s", tc.instant, tc.timezone, got, tc.want)
		}
	}

	if got := SlotLocalDate("not-a-time", "UTC"); got != "" {
		t.Errorf("SlotLocalDate(garbage) = %q, want empty", got)
	}
}
