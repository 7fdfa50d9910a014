package models

type Doctor struct {
	DoctorID        string  `json:"doctorId"`
	FullName        string  `json:"fullName"`
	Specialty       string  `json:"specialty"`
	Bio             string  `json:"bio,omitempty"`
	Education       string  `json:"education,omitempty"`
	Address         string  `json:"address,omitempty"`
	AvgRating       float64 `json:"avgRating"`
	ReviewCount     int     `json:"reviewCount"`
	Experience      int     `json:"experience"`
	ConsultationFee float64 `json:"consultationFee"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	ImageObjectKey  string  `json:"imageObjectKey,omitempty"`
	Available       bool    `json:"available"`
}
