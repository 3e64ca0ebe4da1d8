package schedule

import (
	"time"

	"github.com/kingluffyxx/portfolio/internal/calcom"
)

// gridSize is the fixed cell count of the calendar view: 6 full weeks.
const gridSize = 42

// dayKeyLayout is the calendar-day key format used throughout the widget.
const dayKeyLayout = "2006-01-02"

// CalendarDay is one cell of the 6-week calendar grid. It is a pure projection
// of its inputs and is recomputed rather than stored.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsSelected     bool      `json:"isSelected"`
	HasSlots       bool      `json:"hasSlots"`
	Disabled       bool      `json:"disabled"`
}

// DateKey returns the YYYY-MM-DD key for a date in its own location.
func DateKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// SlotLocalDate projects an RFC3339 instant into the named timezone and
// returns its calendar-day key there. Unparseable input yields "".
func SlotLocalDate(instant, timezone string) string {
	t, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		return ""
	}
	return t.In(UserTimezone(timezone)).Format(dayKeyLayout)
}

// gridStart returns the Monday on or before the first of the month.
func gridStart(month time.Time) time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	offset := int(first.Weekday()) - 1
	if first.Weekday() == time.Sunday {
		offset = 6
	}
	return first.AddDate(0, 0, -offset)
}

// MonthDateRange returns the padded 42-day window covering the whole grid for
// a month, as inclusive YYYY-MM-DD bounds. Availability is fetched for this
// window rather than the strict month so leading and trailing cells resolve.
func MonthDateRange(month time.Time) (start, end string) {
	first := gridStart(month)
	return DateKey(first), DateKey(first.AddDate(0, 0, gridSize-1))
}

// GenerateCalendarDays produces exactly 42 cells for the month containing
// month, Monday-first. A cell has slots only when it belongs to the displayed
// month and its day key maps to a non-empty slot list; it is disabled when in
// the past, out of month, or without slots. now supplies "today".
func GenerateCalendarDays(month time.Time, selected *time.Time, availability calcom.MonthSlots, now time.Time) []CalendarDay {
	start := gridStart(month)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, month.Location())

	selectedKey := ""
	if selected != nil {
		selectedKey = DateKey(*selected)
	}

	days := make([]CalendarDay, 0, gridSize)
	for i := 0; i < gridSize; i++ {
		date := start.AddDate(0, 0, i)
		key := DateKey(date)

		inMonth := date.Month() == month.Month() && date.Year() == month.Year()
		hasSlots := inMonth && len(availability[key]) > 0
		isPast := date.Before(today)

		days = append(days, CalendarDay{
			Date:           date,
			IsCurrentMonth: inMonth,
			IsSelected:     selectedKey != "" && selectedKey == key,
			HasSlots:       hasSlots,
			Disabled:       isPast || !inMonth || !hasSlots,
		})
	}
	return days
}
