package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParseOptionalInt32 reads an int32 query parameter. A missing parameter yields 0.
// Malformed values are answered with 400 and ok=false.
func ParseOptionalInt32(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, true
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}
