package constvars

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

const (
	RecurrenceNone   = "none"
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	BookingEventConfirmed = "booking.confirmed"
	BookingEventCancelled = "booking.cancelled"
)

// Layouts used on the wire. Dates are calendar days in the service timezone.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05Z07:00"
)

const (
	LockKeyAvailabilityDoctorFormat = "availability:doctor:%s"
	LockKeyBookingSlotFormat        = "booking:%s:%s:%s"
	CacheKeyDoctorRoster            = "directory:roster:verified"
)
