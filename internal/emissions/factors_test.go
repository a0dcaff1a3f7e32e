package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactorOf(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		activity string
		want     float64
	}{
		{"car per km", CategoryTransportation, "car", 0.21},
		{"bus per km", CategoryTransportation, "bus", 0.08},
		{"train per km", CategoryTransportation, "train", 0.04},
		{"plane per km", CategoryTransportation, "plane", 0.25},
		{"bicycle is zero", CategoryTransportation, "bicycle", 0},
		{"walking is zero", CategoryTransportation, "walking", 0},
		{"electricity per kWh", CategoryEnergy, "electricity", 0.5},
		{"natural gas", CategoryEnergy, "natural_gas", 2.0},
		{"beef", CategoryDiet, "beef", 27.0},
		{"vegetables", CategoryDiet, "vegetables", 2.0},
		{"furniture", CategoryShopping, "furniture", 100.0},
		{"waste plastic", CategoryWaste, "plastic", 3.0},
		{"shopping plastic differs from waste plastic", CategoryShopping, "plastic", 6.0},
		{"unknown activity falls back to 1", CategoryTransportation, "teleport", 1},
		{"unknown category falls back to 1", Category("lodging"), "hotel", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FactorOf(tt.category, tt.activity))
		})
	}
}

func TestQuantify(t *testing.T) {
	// 50 km by car at 0.21 kg/km
	assert.InDelta(t, 10.5, Quantify(CategoryTransportation, "car", 50, 1), 1e-9)

	// The same trip shared across three passengers.
	assert.InDelta(t, 3.5, Quantify(CategoryTransportation, "car", 50, 3), 1e-9)

	// Passenger counts never apply outside transportation.
	assert.InDelta(t, 54.0, Quantify(CategoryDiet, "beef", 2, 4), 1e-9)

	// Zero passengers leaves the trip unshared.
	assert.InDelta(t, 10.5, Quantify(CategoryTransportation, "car", 50, 0), 1e-9)

	// Zero-factor activities always quantify to zero.
	assert.Zero(t, Quantify(CategoryTransportation, "bicycle", 120, 2))

	// Unknown pairs pass the quantity straight through.
	assert.InDelta(t, 7.5, Quantify(CategoryEnergy, "solar", 7.5, 1), 1e-9)
}

func TestAvailableActivities(t *testing.T) {
	assert.Equal(t,
		[]string{"car", "bus", "train", "plane", "motorcycle", "bicycle", "walking"},
		AvailableActivities(CategoryTransportation))
	assert.Equal(t,
		[]string{"electricity", "natural_gas", "heating_oil", "propane"},
		AvailableActivities(CategoryEnergy))
	assert.Empty(t, AvailableActivities(Category("lodging")))
}

func TestEveryCategoryHasFactors(t *testing.T) {
	for _, category := range Categories {
		assert.NotEmpty(t, AvailableActivities(category), "category %s has no activities", category)
	}
}
