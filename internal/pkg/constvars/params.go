package constvars

const (
	URLParamDoctorID       = "doctor_id"
	URLParamAvailabilityID = "availability_id"
	URLParamBookingID      = "booking_id"
)

const (
	URLQueryParamSearch = "search"
	URLQueryParamFrom   = "from"
	URLQueryParamTo     = "to"
)
