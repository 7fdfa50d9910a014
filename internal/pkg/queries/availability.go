package queries

const (
	InsertAvailabilityRule = `
		INSERT INTO availability_rules (id, doctor_id, start_time, end_time, recurrence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	ReplaceAvailabilityRule = `
		UPDATE availability_rules
		SET start_time = $1, end_time = $2, recurrence = $3, updated_at = $4
		WHERE id = $5 AND doctor_id = $6
	`

	DeleteAvailabilityRule = "DELETE FROM availability_rules WHERE id = $1 AND doctor_id = $2"

	GetAvailabilityRuleByID = `
		SELECT id, doctor_id, start_time, end_time, recurrence, created_at, updated_at
		FROM availability_rules
		WHERE id = $1 AND doctor_id = $2
	`

	GetAvailabilityRulesByDoctorID = `
		SELECT id, doctor_id, start_time, end_time, recurrence, created_at, updated_at
		FROM availability_rules
		WHERE doctor_id = $1
		ORDER BY start_time ASC
	`
)
