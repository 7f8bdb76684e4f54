package adapthttp

import (
	"net/http"
	"strings"
)

// handleSummary serves the chart data for one person: latest entry, change and
// trend over ?period=, the active goal with its milestones, in ?unit=.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	personID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	period, err := periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("unit")))

	user := userFromContext(r.Context())
	summary, err := s.Summary.PersonSummary(r.Context(), user.ID, personID, period, unit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
