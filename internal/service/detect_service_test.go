package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetection(t *testing.T) {
	cases := []struct {
		name        string
		input       string
		success     bool
		plate       string
		vehicleType string
	}{
		{"clean reply", "MH12AB1234|4wheeler", true, "MH12AB1234", "4wheeler"},
		{"two wheeler", "DL01CD5678|2wheeler", true, "DL01CD5678", "2wheeler"},
		{"lowercase and noise", " mh12ab1234 | 4-Wheeler ", true, "MH12AB1234", "4wheeler"},
		{"plate with separators", "MH 12-AB 1234|3wheeler", true, "MH12AB1234", "3wheeler"},
		{"unknown vehicle type falls back", "MH12AB1234|spaceship", true, "MH12AB1234", "4wheeler"},
		{"missing vehicle type falls back", "MH12AB1234", true, "MH12AB1234", "4wheeler"},
		{"not detected", "NOT_DETECTED|2wheeler", false, "", "2wheeler"},
		{"too short plate", "AB12|4wheeler", false, "", "4wheeler"},
		{"too long plate", "ABCDEFGH123456789|4wheeler", false, "", "4wheeler"},
		{"empty reply", "", false, "", "4wheeler"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := parseDetection(tc.input)
			assert.Equal(t, tc.success, result.Success)
			assert.Equal(t, tc.plate, result.NumberPlate)
			assert.Equal(t, tc.vehicleType, result.VehicleType)
			if !tc.success {
				assert.NotEmpty(t, result.Error)
			}
		})
	}
}
