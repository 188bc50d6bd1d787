package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination,
// capping the body size. Unknown fields are tolerated; validation happens
// downstream in the services.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// 4MB cap: larger than any valid document payload (requires w for a
	// proper 413 response)
	r.Body = http.MaxBytesReader(w, r.Body, 4<<20)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
