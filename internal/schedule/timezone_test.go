package schedule

import (
	"strings"
	"testing"
	"time"
)

func offsetMinutesFor(t *testing.T, name string, now time.Time) int {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	_, offset := now.In(loc).Zone()
	return offset / 60
}

func TestAvailableTimezones_SortedByOffsetThenLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	options := AvailableTimezones(now)
	if len(options) == 0 {
		t.Fatal("expected at least the fallback timezones")
	}

	prevOffset := -15 * 60
	prevLabel := ""
	for _, opt := range options {
		offset := offsetMinutesFor(t, opt.Value, now)
		if offset < prevOffset {
			t.Fatalf("offset order violated at %s: %d < %d", opt.Value, offset, prevOffset)
		}
		if offset == prevOffset && opt.Label < prevLabel {
			t.Fatalf("label order violated at %s: %q < %q", opt.Value, opt.Label, prevLabel)
		}
		prevOffset, prevLabel = offset, opt.Label
	}
}

func TestAvailableTimezones_FiltersAliases(t *testing.T) {
	options := AvailableTimezones(time.Now())
	for _, opt := range options {
		if strings.HasPrefix(opt.Value, "US/") || strings.HasPrefix(opt.Value, "Canada/") ||
			strings.HasPrefix(opt.Value, "Etc/") || strings.Contains(opt.Value, "SystemV") {
			t.Fatalf("alias zone %s not filtered", opt.Value)
		}
		if opt.Value != "UTC" && !strings.Contains(opt.Value, "/") {
			t.Fatalf("non-geographic zone %s not filtered", opt.Value)
		}
	}
}

func TestAvailableTimezones_Labels(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	options := AvailableTimezones(now)

	var newYork, utc string
	for _, opt := range options {
		switch opt.Value {
		case "America/New_York":
			newYork = opt.Label
		case "UTC":
			utc = opt.Label
		}
	}
	// January: EST, UTC-5.
	if newYork != "New York (GMT-05:00)" {
		t.Fatalf("New York label = %q", newYork)
	}
	if utc != "UTC (GMT+00:00)" {
		t.Fatalf("UTC label = %q", utc)
	}
}

func TestUserTimezone(t *testing.T) {
	if got := UserTimezone("America/New_York").String(); got != "America/New_York" {
		t.Fatalf("UserTimezone(valid) = %s", got)
	}
	if got := UserTimezone("").String(); got != DefaultTimezone {
		t.Fatalf("UserTimezone(empty) = %s, want default", got)
	}
	if got := UserTimezone("Not/A_Zone").String(); got != DefaultTimezone {
		t.Fatalf("UserTimezone(bogus) = %s, want default", got)
	}
}

func TestSelectableTimezone(t *testing.T) {
	cases := map[string]bool{
		"UTC":                  true,
		"Europe/Paris":         true,
		"America/Indiana/Knox": true,
		"US/Eastern":           false,
		"Canada/Pacific":       false,
		"Etc/GMT+5":            false,
		"GMT":                  false,
		"EST5EDT":              false,
		"posix/Europe/Paris":   false,
		"right/Europe/Paris":   false,
	}
	for name, want := range cases {
		if got := selectableTimezone(name); got != want {
			t.Errorf("selectableTimezone(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestOffsetLabel(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "GMT+00:00"},
		{2 * 3600, "GMT+02:00"},
		{-5 * 3600, "GMT-05:00"},
		{5*3600 + 30*60, "GMT+05:30"},
		{-(9*3600 + 30*60), "GMT-09:30"},
		{14 * 3600, "GMT+14:00"},
	}
	for _, tc := range cases {
		if got := offsetLabel(tc.seconds); got != tc.want {
			t.Errorf("offsetLabel(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
