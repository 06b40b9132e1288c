package controllers

import (
	"net/http"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	partsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
)

// ListRooms serves the fixed room and appliance catalog.
func ListRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, partsvc.Rooms())
	}
}
