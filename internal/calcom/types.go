package calcom

// Slot is a single bookable start time offered by Cal.com. Duration is implied
// by the event type configuration, so no end time is carried.
type Slot struct {
	Time string `json:"time"`
}

// MonthSlots maps a calendar-day key (YYYY-MM-DD, in the viewer's timezone) to
// the ordered slots on that day.
type MonthSlots map[string][]Slot

// Attendee identifies a booking participant.
type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingRequest carries everything needed to create a booking.
type BookingRequest struct {
	EventTypeID int
	Start       string
	Name        string
	Email       string
	Notes       string
	TimeZone    string
	Language    string
}

// Booking is the confirmed booking returned by Cal.com, normalized across the
// v2 response variants.
type Booking struct {
	UID       string     `json:"uid"`
	Title     string     `json:"title"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Attendees []Attendee `json:"attendees"`
}

// wire shapes

type slotsEnvelope struct {
	Data struct {
		Slots map[string][]rawSlot `json:"slots"`
	} `json:"data"`
}

// rawSlot tolerates both slot encodings Cal.com has shipped.
type rawSlot struct {
	Start string `json:"start"`
	Time  string `json:"time"`
}

func (s rawSlot) startTime() string {
	if s.Start != "" {
		return s.Start
	}
	return s.Time
}

type bookingEnvelope struct {
	Data rawBooking `json:"data"`
	rawBooking
}

type rawBooking struct {
	UID       string     `json:"uid"`
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Start     string     `json:"start"`
	StartTime string     `json:"startTime"`
	End       string     `json:"end"`
	EndTime   string     `json:"endTime"`
	Attendees []Attendee `json:"attendees"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}
