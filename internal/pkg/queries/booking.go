package queries

const (
	InsertBooking = `
		INSERT INTO bookings (id, doctor_id, patient_id, date, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	bookingColumns = `
		SELECT id, doctor_id, patient_id, date, start_time, end_time, status, cancelled_at, created_at, updated_at
		FROM bookings
	`

	GetBookingByID = bookingColumns + `WHERE id = $1`

	GetConfirmedBookingBySlot = bookingColumns + `
		WHERE doctor_id = $1 AND date = $2 AND start_time = $3 AND status = 'confirmed'
	`

	GetConfirmedBookingsByDoctorBetween = bookingColumns + `
		WHERE doctor_id = $1 AND date >= $2 AND date <= $3 AND status = 'confirmed'
		ORDER BY date ASC, start_time ASC
	`

	GetBookingsByPatientID = bookingColumns + `
		WHERE patient_id = $1
		ORDER BY date ASC, start_time ASC
	`

	GetBookingsByDoctorBetween = bookingColumns + `
		WHERE doctor_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, start_time ASC
	`

	TransitionBookingStatus = `
		UPDATE bookings
		SET status = $1, cancelled_at = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
)
