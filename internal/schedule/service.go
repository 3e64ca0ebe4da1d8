package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kingluffyxx/portfolio/internal/calcom"
	"github.com/kingluffyxx/portfolio/pkg/logging"
)

var scheduleTracer = otel.Tracer("portfolio.internal.schedule")

// SlotProvider is the slice of the Cal.com client the widget needs.
type SlotProvider interface {
	GetAvailableSlots(ctx context.Context, eventTypeID, startDate, endDate, timeZone string) (calcom.MonthSlots, error)
	CreateBooking(ctx context.Context, req calcom.BookingRequest) (*calcom.Booking, error)
}

// Service holds the per-session slot state for the booking widget: a month-slot
// map populated incrementally as months are viewed. Merges are additive by day
// key (last write wins); nothing is pruned for the lifetime of the session.
type Service struct {
	provider    SlotProvider
	eventTypeID string
	logger      *logging.Logger

	mu         sync.Mutex
	monthSlots calcom.MonthSlots
}

// NewService constructs a slot service for one event type.
func NewService(provider SlotProvider, eventTypeID string, logger *logging.Logger) *Service {
	if provider == nil {
		panic("schedule: provider required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		provider:    provider,
		eventTypeID: eventTypeID,
		logger:      logger,
		monthSlots:  make(calcom.MonthSlots),
	}
}

// FetchMonth loads availability for the full 42-day grid window around month
// and merges it into the running month-slot map. On failure the previous data
// is left intact; calcom.ErrNotConfigured is passed through so callers can
// suppress the widget instead of surfacing an error.
func (s *Service) FetchMonth(ctx context.Context, month time.Time, timezone string) error {
	ctx, span := scheduleTracer.Start(ctx, "schedule.fetch_month")
	defer span.End()
	start, end := MonthDateRange(month)
	span.SetAttributes(
		attribute.String("portfolio.range_start", start),
		attribute.String("portfolio.range_end", end),
		attribute.String("portfolio.timezone", timezone),
	)

	slots, err := s.provider.GetAvailableSlots(ctx, s.eventTypeID, start, end, timezone)
	if err != nil {
		if errors.Is(err, calcom.ErrNotConfigured) {
			return err
		}
		span.RecordError(err)
		s.logger.Error("month slot fetch failed", "error", err, "start", start, "end", end)
		return fmt.Errorf("schedule: fetch month: %w", err)
	}

	s.mu.Lock()
	for day, daySlots := range slots {
		s.monthSlots[day] = daySlots
	}
	s.mu.Unlock()

	s.logger.Info("month slots merged", "days", len(slots), "start", start, "end", end)
	return nil
}

// FetchDay returns the bookable slots for one calendar day in the given
// timezone. Days already cached by a month fetch are answered locally;
// otherwise a ±1-day padded window is requested to absorb timezone boundary
// shifts, and the result is filtered to slots whose local day matches exactly.
func (s *Service) FetchDay(ctx context.Context, day time.Time, timezone string) ([]calcom.Slot, error) {
	key := DateKey(day)

	s.mu.Lock()
	cached, ok := s.monthSlots[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	ctx, span := scheduleTracer.Start(ctx, "schedule.fetch_day")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.day", key))

	start := DateKey(day.AddDate(0, 0, -1))
	end := DateKey(day.AddDate(0, 0, 1))

	window, err := s.provider.GetAvailableSlots(ctx, s.eventTypeID, start, end, timezone)
	if err != nil {
		if errors.Is(err, calcom.ErrNotConfigured) {
			return nil, err
		}
		span.RecordError(err)
		s.logger.Error("day slot fetch failed", "error", err, "day", key)
		return nil, fmt.Errorf("schedule: fetch day: %w", err)
	}

	var slots []calcom.Slot
	for _, daySlots := range window {
		for _, slot := range daySlots {
			if SlotLocalDate(slot.Time, timezone) == key {
				slots = append(slots, slot)
			}
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	return slots, nil
}

// MonthSlots returns a snapshot copy of the merged month-slot map.
func (s *Service) MonthSlots() calcom.MonthSlots {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(calcom.MonthSlots, len(s.monthSlots))
	for day, daySlots := range s.monthSlots {
		snapshot[day] = daySlots
	}
	return snapshot
}

// Calendar derives the 42-cell grid for month from the merged availability.
func (s *Service) Calendar(month time.Time, selected *time.Time, now time.Time) []CalendarDay {
	return GenerateCalendarDays(month, selected, s.MonthSlots(), now)
}

// Book forwards a booking request to the provider.
func (s *Service) Book(ctx context.Context, req calcom.BookingRequest) (*calcom.Booking, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.book")
	defer span.End()
	span.SetAttributes(attribute.Int("portfolio.event_type_id", req.EventTypeID))

	booking, err := s.provider.CreateBooking(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.Info("booking created", "uid", booking.UID, "start", booking.StartTime)
	return booking, nil
}
