package propertyform

// Amenity is one selectable entry of a category's catalog.
type Amenity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var amenityCatalog = map[Category][]Amenity{
	Plot: {
		{ID: "gated-community", Label: "Gated community"},
		{ID: "compound-wall", Label: "Compound wall"},
		{ID: "road-access", Label: "Road access"},
		{ID: "water-connection", Label: "Water connection"},
		{ID: "electricity", Label: "Electricity"},
		{ID: "drainage", Label: "Drainage"},
	},
	House: {
		{ID: "parking", Label: "Parking"},
		{ID: "garden", Label: "Garden"},
		{ID: "power-backup", Label: "Power backup"},
		{ID: "security", Label: "Security"},
		{ID: "water-connection", Label: "Water connection"},
		{ID: "solar-panels", Label: "Solar panels"},
	},
	Apartment: {
		{ID: "swimming-pool", Label: "Swimming pool"},
		{ID: "gym", Label: "Gym"},
		{ID: "lift", Label: "Lift"},
		{ID: "parking", Label: "Parking"},
		{ID: "security", Label: "Security"},
		{ID: "clubhouse", Label: "Clubhouse"},
		{ID: "power-backup", Label: "Power backup"},
		{ID: "children-play-area", Label: "Children's play area"},
	},
	Land: {
		{ID: "road-access", Label: "Road access"},
		{ID: "water-source", Label: "Water source"},
		{ID: "borewell", Label: "Borewell"},
		{ID: "electricity", Label: "Electricity"},
		{ID: "fencing", Label: "Fencing"},
	},
}

// Catalog returns a copy of the amenities offered for c.
func Catalog(c Category) []Amenity {
	src := amenityCatalog[c]
	out := make([]Amenity, len(src))
	copy(out, src)
	return out
}

// InCatalog reports whether id is offered for c.
func InCatalog(c Category, id string) bool {
	for _, a := range amenityCatalog[c] {
		if a.ID == id {
			return true
		}
	}
	return false
}
