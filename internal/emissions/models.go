package emissions

import "time"

// Category identifies one of the fixed emission categories.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryEnergy         Category = "energy"
	CategoryDiet           Category = "diet"
	CategoryShopping       Category = "shopping"
	CategoryWaste          Category = "waste"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTransportation,
	CategoryEnergy,
	CategoryDiet,
	CategoryShopping,
	CategoryWaste,
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxNotesLength bounds the free-text note on a record.
const MaxNotesLength = 500

// Emission is one logged activity with its computed CO2-equivalent mass.
// CO2e is derived from (category, activity, amount) at every write; it is
// never read back stale after an edit.
type Emission struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user" json:"user"`
	Category  Category  `bson:"category" json:"category"`
	Activity  string    `bson:"activity" json:"activity"`
	Amount    float64   `bson:"amount" json:"amount"`
	Unit      string    `bson:"unit" json:"unit"`
	CO2e      float64   `bson:"co2e" json:"co2e"`
	Date      time.Time `bson:"date" json:"date"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
