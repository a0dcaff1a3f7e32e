package emissions

// ActivityFactor pairs an activity key with its emission factor
// (kg CO2e per unit of quantity).
type ActivityFactor struct {
	Key    string
	Factor float64
}

// factorDefs is the static emission-factor table. It is built once and never
// mutated, so concurrent reads need no synchronization. The slice form keeps
// the activity ordering stable for AvailableActivities.
var factorDefs = map[Category][]ActivityFactor{
	CategoryTransportation: {
		{"car", 0.21},        // per km
		{"bus", 0.08},        // per km
		{"train", 0.04},      // per km
		{"plane", 0.25},      // per km
		{"motorcycle", 0.11}, // per km
		{"bicycle", 0},
		{"walking", 0},
	},
	CategoryEnergy: {
		{"electricity", 0.5}, // per kWh
		{"natural_gas", 2.0}, // per m³
		{"heating_oil", 2.7}, // per liter
		{"propane", 1.5},     // per liter
	},
	CategoryDiet: {
		{"beef", 27.0}, // per kg
		{"chicken", 6.9},
		{"pork", 12.1},
		{"fish", 5.1},
		{"eggs", 4.5},
		{"dairy", 3.2},
		{"vegetables", 2.0},
		{"fruits", 1.1},
	},
	CategoryShopping: {
		{"electronics", 50.0}, // per item
		{"clothing", 15.0},
		{"furniture", 100.0},
		{"plastic", 6.0}, // per kg
	},
	CategoryWaste: {
		{"plastic", 3.0}, // per kg
		{"paper", 1.5},
		{"food", 2.5},
		{"glass", 1.0},
	},
}

// factorIndex is the lookup view of factorDefs, built at init.
var factorIndex = func() map[Category]map[string]float64 {
	index := make(map[Category]map[string]float64, len(factorDefs))
	for category, activities := range factorDefs {
		m := make(map[string]float64, len(activities))
		for _, af := range activities {
			m[af.Key] = af.Factor
		}
		index[category] = m
	}
	return index
}()

// FactorOf returns the emission factor for a (category, activity) pair.
// Unknown pairs fall back to a factor of 1, so the raw quantity passes
// through as the CO2e value.
func FactorOf(category Category, activity string) float64 {
	if activities, ok := factorIndex[category]; ok {
		if factor, ok := activities[activity]; ok {
			return factor
		}
	}
	return 1
}

// AvailableActivities returns the activity keys defined for a category, in
// table order. Unknown categories yield an empty slice, not an error.
func AvailableActivities(category Category) []string {
	defs := factorDefs[category]
	keys := make([]string, 0, len(defs))
	for _, af := range defs {
		keys = append(keys, af.Key)
	}
	return keys
}

// Quantify converts a logged quantity into a CO2-equivalent mass.
// For transportation a positive passenger count amortizes the trip across
// riders; passengers <= 0 leaves the result unshared. No rounding happens
// here; presentation layers round at their own boundary.
func Quantify(category Category, activity string, quantity float64, passengers int) float64 {
	result := quantity * FactorOf(category, activity)
	if category == CategoryTransportation && passengers > 0 {
		result /= float64(passengers)
	}
	return result
}
