package handlers

import (
	"net/http"

	"github.com/playerz/playerz-api/models"
)

// PairFunc splits player ids into two-player teams.
type PairFunc func(playerIDs []int, randomize bool) ([]models.Pair, error)

type GameHandler struct {
	pair PairFunc
}

func NewGameHandler(pair PairFunc) *GameHandler {
	return &GameHandler{pair: pair}
}

type organizeTeamsInput struct {
	Players   []int `json:"players"`
	Randomize bool  `json:"randomize"`
}

// @Summary Organize players into two-player teams
// @Description With an odd count the last player gets partner 0.
// @Tags games
// @Accept json
// @Produce json
// @Param request body organizeTeamsInput true "Players to pair"
// @Success 200 {object} map[string][]models.Pair
// @Failure 400 {object} map[string]string
// @Router /games/organize_teams [post]
func (h *GameHandler) OrganizeTeams(w http.ResponseWriter, r *http.Request) {
	var input organizeTeamsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teams, err := h.pair(input.Players, input.Randomize)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
