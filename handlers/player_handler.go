package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/playerz/playerz-api/services"
)

const maxAvatarBytes = 8 << 20

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// ListPlayers godoc
// @Summary List players
// @Tags players
// @Produce json
// @Success 200 {object} map[string][]models.Player
// @Failure 500 {object} map[string]string
// @Router /players/ [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayer godoc
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.GetPlayerByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayer godoc
// @Summary Create a player
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param player body services.CreatePlayerInput true "Player"
// @Success 201 {object} map[string]models.Player
// @Failure 400 {object} map[string]string
// @Router /players/ [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayer godoc
// @Summary Partially update a player
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Param player body services.UpdatePlayerInput true "Fields to change"
// @Success 200 {object} map[string]models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.UpdatePlayer(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayer godoc
// @Summary Delete a player
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]models.Player
// @Failure 404 {object} map[string]string
// @Router /players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.DeletePlayer(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAvatar godoc
// @Summary Upload a player avatar
// @Tags players
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /players/{id}/avatar [post]
func (h *PlayerHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get avatar file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	player, err := h.playerService.UploadAvatar(r.Context(), id, file, header.Filename, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
