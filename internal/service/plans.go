package service

import (
	"fmt"

	"parkvue/internal/db"
	"parkvue/internal/entities"
)

// Plan prices are authoritative here; the kiosk only displays them. The ₹10
// convenience fee is applied at receipt time and never stored.
var planOptions = []entities.PlanOption{
	{
		Type:        db.SpotTypeNormal,
		Name:        "Normal Parking",
		Description: "Standard parking with basic facilities",
		Price:       50,
		Features:    []string{"24/7 Security", "CCTV Surveillance", "Easy Access"},
	},
	{
		Type:        db.SpotTypeVIP,
		Name:        "VIP Parking",
		Description: "Premium parking with enhanced services",
		Price:       120,
		Features:    []string{"Valet Service", "Car Wash", "Priority Access", "Covered Parking"},
	},
	{
		Type:        db.SpotTypeEVCharging,
		Name:        "EV Charging",
		Description: "Electric vehicle parking with charging station",
		Price:       80,
		Features:    []string{"Fast Charging", "Eco-Friendly", "Charging Cables Provided", "Green Zone"},
	},
}

func ListPlans() []entities.PlanOption {
	return planOptions
}

func PlanByType(planType string) (*entities.PlanOption, error) {
	for i := range planOptions {
		if planOptions[i].Type == planType {
			return &planOptions[i], nil
		}
	}
	return nil, fmt.Errorf("unknown plan type %q", planType)
}
