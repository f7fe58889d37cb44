package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "MH12AB1234", NormalizePlate("mh 12-ab-1234"))
	assert.Equal(t, "MH12AB1234", NormalizePlate("MH12AB1234"))
	assert.Equal(t, "DL01CD5678", NormalizePlate("  dl01cd5678  "))
	assert.Equal(t, "", NormalizePlate("   "))
}

func TestVehicleTypeLabel(t *testing.T) {
	assert.Equal(t, "2-Wheeler", VehicleTypeLabel("2wheeler"))
	assert.Equal(t, "3-Wheeler", VehicleTypeLabel("3wheeler"))
	assert.Equal(t, "4-Wheeler", VehicleTypeLabel("4wheeler"))
}
