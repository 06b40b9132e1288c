package parts

import "sort"

// roomCatalog maps each room tag to the appliance types commonly stocked for
// it. The lists seed the part form; appliance tags outside them are still
// accepted so new types can be introduced without a deploy.
var roomCatalog = map[string][]string{
	"Kitchen":  {"Oven", "Fridge", "Garbage Disposal", "Microwave", "Faucet", "Other"},
	"Bathroom": {"Shower", "Toilet", "Electrical", "Other"},
	"Laundry":  {"Washing Machine", "Dryer", "Other"},
	"Bedroom":  {"Electrical", "Desk", "Other"},
	"Living":   {"Blind Slats", "TV", "Other"},
	"HVAC":     {"Furnace", "Waterheater", "Air Conditioning", "Other"},
	"Other":    {"Miscellaneous"},
}

// Rooms returns a copy of the catalog.
func Rooms() map[string][]string {
	out := make(map[string][]string, len(roomCatalog))
	for room, appliances := range roomCatalog {
		out[room] = append([]string(nil), appliances...)
	}
	return out
}

// RoomNames returns the sorted list of known rooms.
func RoomNames() []string {
	names := make([]string, 0, len(roomCatalog))
	for room := range roomCatalog {
		names = append(names, room)
	}
	sort.Strings(names)
	return names
}

// IsKnownRoom reports whether the room tag is part of the catalog.
func IsKnownRoom(room string) bool {
	_, ok := roomCatalog[room]
	return ok
}
