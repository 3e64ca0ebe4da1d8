package schedule

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/kingluffyxx/portfolio/internal/calcom"
)

// Step is the booking widget's current screen.
type Step string

const (
	StepCalendar Step = "calendar"
	StepForm     Step = "form"
	StepSuccess  Step = "success"
)

// Flow transition errors. All are user-correctable, none terminal.
var (
	ErrNoSlotSelected    = errors.New("schedule: a date and slot must be selected first")
	ErrInvalidTransition = errors.New("schedule: transition not allowed from current step")
)

// Flow is the booking state machine: calendar → form → success, with
// form → calendar as the only backward transition. A failed submission keeps
// the flow on the form step with the error message retained.
type Flow struct {
	service     *Service
	eventTypeID int
	timezone    string
	locale      string

	step         Step
	selectedDate *time.Time
	selectedSlot *calcom.Slot
	booking      *calcom.Booking
	lastError    string
}

// NewFlow starts a booking flow on the calendar step.
func NewFlow(service *Service, eventTypeID, timezone, locale string) *Flow {
	id, _ := strconv.Atoi(eventTypeID)
	if timezone == "" {
		timezone = DefaultTimezone
	}
	if locale == "" {
		locale = "fr"
	}
	return &Flow{
		service:     service,
		eventTypeID: id,
		timezone:    timezone,
		locale:      locale,
		step:        StepCalendar,
	}
}

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// LastError returns the most recent submission error message, if any.
func (f *Flow) LastError() string { return f.lastError }

// Booking returns the confirmed booking once the flow reaches success.
func (f *Flow) Booking() *calcom.Booking { return f.booking }

// SelectDate picks a calendar day and clears any previously chosen slot.
func (f *Flow) SelectDate(date time.Time) {
	d := date
	f.selectedDate = &d
	f.selectedSlot = nil
}

// SelectSlot picks a start time on the selected day.
func (f *Flow) SelectSlot(slot calcom.Slot) {
	s := slot
	f.selectedSlot = &s
}

// Continue advances calendar → form. It requires a selected day and slot.
func (f *Flow) Continue() error {
	if f.step != StepCalendar {
		return ErrInvalidTransition
	}
	if f.selectedDate == nil || f.selectedSlot == nil {
		return ErrNoSlotSelected
	}
	f.step = StepForm
	return nil
}

// Back returns form → calendar, the only backward transition.
func (f *Flow) Back() error {
	if f.step != StepForm {
		return ErrInvalidTransition
	}
	f.step = StepCalendar
	return nil
}

// Submit posts the attendee details for the selected slot. Success advances to
// the success step with the booking record; failure stays on the form step and
// records the error message.
func (f *Flow) Submit(ctx context.Context, name, email, notes string) error {
	if f.step != StepForm {
		return ErrInvalidTransition
	}
	if f.selectedSlot == nil {
		return ErrNoSlotSelected
	}

	booking, err := f.service.Book(ctx, calcom.BookingRequest{
		EventTypeID: f.eventTypeID,
		Start:       f.selectedSlot.Time,
		Name:        name,
		Email:       email,
		Notes:       notes,
		TimeZone:    f.timezone,
		Language:    f.locale,
	})
	if err != nil {
		f.lastError = err.Error()
		return err
	}

	f.booking = booking
	f.lastError = ""
	f.step = StepSuccess
	return nil
}

// BookAnother resets date, slot and booking and returns to the calendar step.
func (f *Flow) BookAnother() error {
	if f.step != StepSuccess {
		return ErrInvalidTransition
	}
	f.selectedDate = nil
	f.selectedSlot = nil
	f.booking = nil
	f.lastError = ""
	f.step = StepCalendar
	return nil
}
