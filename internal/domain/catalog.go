package domain

// Tag is immutable reference data for categorizing recipes.
// Slug is the canonical form: lowercase, hyphenated.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // Display color, hex
	Slug  string `json:"slug"`
}

// Ingredient is immutable reference data: a name plus its measurement unit.
// The same ingredient name may appear with different units ("flour"/"g" and
// "flour"/"cup" are distinct rows).
type Ingredient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
