package models

import "doctor-booking-service/internal/pkg/constvars"

// CallerIdentity is resolved from the bearer credential and passed explicitly
// into every domain call.
type CallerIdentity struct {
	ID         string
	Role       string
	Credential string
}

func (c CallerIdentity) IsDoctor() bool {
	return c.Role == constvars.RoleDoctor
}

func (c CallerIdentity) IsPatient() bool {
	return c.Role == constvars.RolePatient
}
