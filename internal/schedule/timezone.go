// Package schedule implements the booking-widget domain: timezone selection,
// calendar-grid generation, slot fetching and the booking flow itself.
package schedule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultTimezone is substituted whenever a visitor timezone cannot be resolved.
const DefaultTimezone = "Europe/Paris"

// TimezoneOption pairs an IANA zone name with a human-readable label.
type TimezoneOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// zoneinfoDirs are the tzdata locations probed for zone enumeration, in order.
var zoneinfoDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
}

// fallbackTimezones is used when the host zoneinfo database cannot be read.
var fallbackTimezones = []string{
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Toronto",
	"America/Sao_Paulo",
	"America/Mexico_City",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Paris",
	"Europe/Rome",
	"Europe/Madrid",
	"Europe/Amsterdam",
	"Europe/Moscow",
	"Asia/Tokyo",
	"Asia/Shanghai",
	"Asia/Hong_Kong",
	"Asia/Singapore",
	"Asia/Seoul",
	"Asia/Kolkata",
	"Asia/Dubai",
	"Australia/Sydney",
	"Australia/Melbourne",
	"Africa/Cairo",
	"Africa/Johannesburg",
	"Pacific/Auckland",
	"UTC",
}

// AvailableTimezones returns the selectable timezones sorted ascending by
// current UTC offset, then alphabetically by label. Zones that fail to load
// are skipped; enumeration failures fall back to a fixed common list, so the
// result is never empty and never an error.
func AvailableTimezones(now time.Time) []TimezoneOption {
	names := systemTimezones()
	if len(names) == 0 {
		names = fallbackTimezones
	}

	type withOffset struct {
		TimezoneOption
		offsetMinutes int
	}

	options := make([]withOffset, 0, len(names))
	for _, name := range names {
		if !selectableTimezone(name) {
			continue
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		_, offsetSeconds := now.In(loc).Zone()
		options = append(options, withOffset{
			TimezoneOption: TimezoneOption{
				Value: name,
				Label: timezoneLabel(name, offsetSeconds),
			},
			offsetMinutes: offsetSeconds / 60,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].offsetMinutes != options[j].offsetMinutes {
			return options[i].offsetMinutes < options[j].offsetMinutes
		}
		return options[i].Label < options[j].Label
	})

	result := make([]TimezoneOption, len(options))
	for i, o := range options {
		result[i] = o.TimezoneOption
	}
	return result
}

// UserTimezone resolves a visitor-supplied zone name, substituting the default
// when the name is empty or unknown. It never fails.
func UserTimezone(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// selectableTimezone filters out non-geographic and deprecated alias zones.
func selectableTimezone(name string) bool {
	if name == "UTC" {
		return true
	}
	if !strings.Contains(name, "/") {
		return false
	}
	switch {
	case strings.Contains(name, "SystemV"),
		strings.HasPrefix(name, "Etc/"),
		strings.HasPrefix(name, "US/"),
		strings.HasPrefix(name, "Canada/"),
		strings.HasPrefix(name, "posix/"),
		strings.HasPrefix(name, "right/"):
		return false
	}
	return true
}

// timezoneLabel formats "City (GMT+02:00)" from a zone name and offset.
func timezoneLabel(name string, offsetSeconds int) string {
	city := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		city = name[idx+1:]
	}
	city = strings.ReplaceAll(city, "_", " ")
	return fmt.Sprintf("%s (%s)", city, offsetLabel(offsetSeconds))
}

func offsetLabel(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("GMT%s%02d:%02d", sign, offsetSeconds/3600, offsetSeconds%3600/60)
}

// systemTimezones enumerates the host tzdata database. Returns nil when no
// zoneinfo directory is readable.
func systemTimezones() []string {
	for _, dir := range zoneinfoDirs {
		if names := walkZoneinfo(dir); len(names) > 0 {
			return names
		}
	}
	return nil
}

func walkZoneinfo(dir string) []string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var names []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		base := filepath.Base(rel)
		// Zone files and directories start with an uppercase letter; that
		// skips zone.tab, leapseconds and friends.
		if base == "" || base[0] < 'A' || base[0] > 'Z' {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			names = append(names, filepath.ToSlash(rel))
		}
		return nil
	})
	return names
}
