package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Directory messages
	GetDoctorsSuccessMessage = "get doctors successfully"
	GetDoctorSuccessMessage  = "get doctor successfully"

	// Availability messages
	GetAvailabilitySuccessMessage    = "get availability successfully"
	CreateAvailabilitySuccessMessage = "availability created successfully"
	UpdateAvailabilitySuccessMessage = "availability updated successfully"
	DeleteAvailabilitySuccessMessage = "availability deleted successfully"
	GetSlotsSuccessMessage           = "get slots successfully"

	// Booking messages
	CreateBookingSuccessMessage = "booking confirmed successfully"
	CancelBookingSuccessMessage = "booking cancelled successfully"
	GetBookingsSuccessMessage   = "get bookings successfully"

	HealthyMessage = "service is healthy"
)
