package entities

type StatsResponse struct {
	TotalSpots     int `json:"total_spots"`
	OccupiedSpots  int `json:"occupied_spots"`
	AvailableSpots int `json:"available_spots"`
	ActiveBookings int `json:"active_bookings"`
	TotalRevenue   int `json:"total_revenue"`
}
