package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TimeHandler answers "what time is it" for a caller-supplied timezone so
// the assistant can ground relative dates before booking.
type TimeHandler struct {
	// now is swappable for tests
	now func() time.Time
}

// NewTimeHandler creates a new time handler
func NewTimeHandler() *TimeHandler {
	return &TimeHandler{now: time.Now}
}

// NewTimeHandlerWithClock creates a time handler with a fixed clock
func NewTimeHandlerWithClock(now func() time.Time) *TimeHandler {
	return &TimeHandler{now: now}
}

// CurrentTime handles GET /api/tools/time?timezone=America/New_York
func (h *TimeHandler) CurrentTime(w http.ResponseWriter, r *http.Request) {
	timezone := strings.TrimSpace(r.URL.Query().Get("timezone"))
	if timezone == "" {
		respondWithError(w, http.StatusBadRequest, "timezone is required; ask the caller for their location")
		return
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown timezone %q; ask the caller for their location", timezone))
		return
	}

	localNow := h.now().In(loc)

	respondWithJSON(w, http.StatusOK, map[string]string{
		"timezone":  timezone,
		"date":      localNow.Format("January 2, 2006"),
		"time":      localNow.Format("3:04 PM"),
		"day":       localNow.Format("Monday"),
		"full_response": fmt.Sprintf(
			"It is currently %s on %s, %s in the %s timezone.",
			localNow.Format("3:04 PM"),
			localNow.Format("Monday"),
			localNow.Format("January 2, 2006"),
			timezone,
		),
	})
}
