package utils

import "strings"

// NormalizePlate upper-cases a vehicle number and strips separators so that
// "mh 12-ab-1234" and "MH12AB1234" match the same booking.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}

// VehicleTypeLabel renders the stored vehicle type for exports,
// e.g. "2wheeler" -> "2-Wheeler".
func VehicleTypeLabel(vehicleType string) string {
	return strings.Replace(vehicleType, "wheeler", "-Wheeler", 1)
}
