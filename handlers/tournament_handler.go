package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/playerz/playerz-api/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	aggregateService  services.AggregateService
}

func NewTournamentHandler(ts services.TournamentService, as services.AggregateService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		aggregateService:  as,
	}
}

// @Summary List tournaments
// @Description Every tournament with its number of registered players, newest first.
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string][]models.TournamentSummary
// @Router /tournaments/ [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Get a tournament with its players, teams, sessions and matches
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.TournamentAggregate
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	aggregate, err := h.aggregateService.Compose(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, aggregate, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Create a tournament with its players, teams, sessions and matches
// @Description All rows are written in one transaction. Any client status is ignored.
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournament body services.CreateTournamentInput true "Tournament"
// @Success 201 {object} models.CreateTournamentResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/ [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	slog.Info("tournament created via API",
		slog.Int("tournament_id", result.TournamentID),
		slog.String("subject", callerSubject(r)),
		slog.String("request_id", middleware.GetReqID(r.Context())))
	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Partially update a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Param tournament body services.UpdateTournamentInput true "Fields to change"
// @Success 200 {object} map[string]models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [put]
func (h *TournamentHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.UpdateTournament(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a tournament
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]models.Tournament
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.DeleteTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Tournament ranking
// @Description Rows come from the database ranking function; columns are passed through unchanged.
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string][]models.Record
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/ranking [get]
func (h *TournamentHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ranking, err := h.tournamentService.GetRanking(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Sessions of a tournament with their matches
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string][]models.Session
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/sessions [get]
func (h *TournamentHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	sessions, err := h.aggregateService.SessionsWithMatches(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sessions": sessions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Add a session with its matches to a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Param session body services.CreateSessionInput true "Session"
// @Success 201 {object} map[string]models.Session
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/sessions [post]
func (h *TournamentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreateSessionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	session, err := h.tournamentService.CreateSession(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
