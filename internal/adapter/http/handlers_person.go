package adapthttp

import (
	"net/http"
	"time"

	"weighttrack/internal/domain"
)

// personRequest is the body of POST /persons and PUT /persons/{id}. The
// read-only fields are accepted so a fetched person can be sent back as is.
type personRequest struct {
	Name             string       `json:"name"`
	Nickname         *string      `json:"nickname"`
	StartingWeightKg formNumber   `json:"starting_weight_kg"`
	HeightCm         formNumber   `json:"height_cm"`
	DateOfBirth      *domain.Date `json:"date_of_birth"`

	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (req personRequest) person() domain.Person {
	return domain.Person{
		Name:             req.Name,
		Nickname:         req.Nickname,
		StartingWeightKg: req.StartingWeightKg.value,
		HeightCm:         req.HeightCm.value,
		DateOfBirth:      req.DateOfBirth,
	}
}

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	items, err := s.Persons.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var body personRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r.Context())
	p, err := s.Persons.Create(r.Context(), user.ID, body.person())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body personRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r.Context())
	p, err := s.Persons.Update(r.Context(), user.ID, id, body.person())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r.Context())
	if err := s.Persons.Delete(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
