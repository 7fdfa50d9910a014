package doctors

import (
	"strings"

	"doctor-booking-service/internal/app/models"
)

// Search keeps doctors whose name or specialty contains query, ignoring case.
// An empty query keeps everyone. Roster order is preserved.
func Search(roster []models.Doctor, query string) []models.Doctor {
	needle := strings.ToLower(strings.TrimSpace(query))
	result := make([]models.Doctor, 0, len(roster))
	for _, doctor := range roster {
		if needle == "" ||
			strings.Contains(strings.ToLower(doctor.FullName), needle) ||
			strings.Contains(strings.ToLower(doctor.Specialty), needle) {
			result = append(result, doctor)
		}
	}
	return result
}
