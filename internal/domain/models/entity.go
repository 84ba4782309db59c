package models

// EntityType distinguishes production farms from distribution hubs.
type EntityType string

const (
	EntityFarm         EntityType = "FARM"
	EntityDistribution EntityType = "DISTRIBUTION"
)

// Entity is a business unit covered by the newsletter. The set is fixed at
// process start and is not user-editable.
type Entity struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Country string     `json:"country"`
	Type    EntityType `json:"type"`
}

var groupEntities = []Entity{
	{ID: "mz-farm", Name: "Chicoa", Country: "Mozambique", Type: EntityFarm},
	{ID: "zm-farm", Name: "Kariba Harvest", Country: "Zambia", Type: EntityFarm},
	{ID: "zw-farm", Name: "Lake Harvest", Country: "Zimbabwe", Type: EntityFarm},
	{ID: "zw-dist", Name: "Lake Harvest Distribution", Country: "Zimbabwe", Type: EntityDistribution},
	{ID: "mw-dist", Name: "Pende", Country: "Malawi", Type: EntityDistribution},
}

// Entities returns the Mvuvi Group business units in report order.
func Entities() []Entity {
	out := make([]Entity, len(groupEntities))
	copy(out, groupEntities)
	return out
}

// EntityByID looks up a business unit by its identifier.
func EntityByID(id string) (Entity, bool) {
	for _, e := range groupEntities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
