package doctors

import (
	"testing"

	"doctor-booking-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	roster := []models.Doctor{
		{DoctorID: "1", FullName: "Dr. Alice Moreau", Specialty: "Cardiology"},
		{DoctorID: "2", FullName: "Dr. Bob Chen", Specialty: "Dermatology"},
		{DoctorID: "3", FullName: "Dr. Carla Diaz", Specialty: "Cardiology"},
	}

	ids := func(doctors []models.Doctor) []string {
		out := make([]string, 0, len(doctors))
		for _, d := range doctors {
			out = append(out, d.DoctorID)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query matches all", "", []string{"1", "2", "3"}},
		{"whitespace query matches all", "   ", []string{"1", "2", "3"}},
		{"specialty case insensitive", "CARDIO", []string{"1", "3"}},
		{"name substring", "chen", []string{"2"}},
		{"no match", "neurology", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(roster, tt.query)))
		})
	}
}
