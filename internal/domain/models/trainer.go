package models

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Trainer is an immutable candidate from the trainer pool
type Trainer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar"`
	Specialties  []string `json:"specialties"`
	Rating       float64  `json:"rating"`
	PricePerHour float64  `json:"price_per_hour"`
	DistanceKm   float64  `json:"distance_km"`
	Location     Location `json:"location"`
}
