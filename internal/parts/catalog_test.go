package parts

import "testing"

func TestRoomCatalog(t *testing.T) {
	if !IsKnownRoom("Kitchen") {
		t.Fatal("expected Kitchen in catalog")
	}
	if IsKnownRoom("Garage") {
		t.Fatal("Garage should not be in catalog")
	}

	names := RoomNames()
	if len(names) != len(roomCatalog) {
		t.Fatalf("expected %d rooms, got %d", len(roomCatalog), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("room names not sorted: %v", names)
		}
	}

	// mutate the copy, catalog must stay intact
	rooms := Rooms()
	rooms["Kitchen"][0] = "Tampered"
	if roomCatalog["Kitchen"][0] != "Oven" {
		t.Fatal("Rooms() must return a copy")
	}
}
