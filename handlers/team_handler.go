package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/playerz/playerz-api/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// @Summary List teams
// @Tags teams
// @Produce json
// @Param tournament_id query int false "Only teams of this tournament"
// @Success 200 {object} map[string][]models.Team
// @Failure 400 {object} map[string]string
// @Router /teams/ [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	var tournamentID *int
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid tournament_id query parameter: %q", raw))
			return
		}
		tournamentID = &id
	}

	teams, err := h.teamService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Get a team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]models.Team
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.teamService.GetTeamByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team body services.CreateTeamInput true "Team"
// @Success 201 {object} map[string]models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/ [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Partially update a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param team body services.UpdateTeamInput true "Fields to change"
// @Success 200 {object} map[string]models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [put]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.teamService.UpdateTeam(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]models.Team
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.teamService.DeleteTeam(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
