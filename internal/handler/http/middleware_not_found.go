package http

import (
	"net/http"

	"github.com/MKhiriev/go-vinted/internal/utils"
)

const routeDoesNotExistMessage = "This route does not exist"

// routeDoesNotExist answers every unmatched path or method. The status is
// 401 rather than 404 so that clients written against the legacy API keep
// their behaviour.
func routeDoesNotExist(w http.ResponseWriter, _ *http.Request) {
	utils.WriteMessage(w, routeDoesNotExistMessage, http.StatusUnauthorized)
}
