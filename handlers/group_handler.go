package handlers

import (
	"net/http"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

// @Summary List groups
// @Tags groupes
// @Produce json
// @Success 200 {object} map[string][]models.Group
// @Router /groupes/ [get]
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groupes": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Get a group
// @Tags groupes
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]models.Group
// @Failure 404 {object} map[string]string
// @Router /groupes/{id} [get]
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.groupService.GetGroupByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groupe": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Create a group
// @Tags groupes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupe body services.GroupInput true "Group"
// @Success 201 {object} map[string]models.Group
// @Failure 400 {object} map[string]string
// @Router /groupes/ [post]
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var input services.GroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.groupService.CreateGroup(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"groupe": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Rename a group
// @Tags groupes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param groupe body services.GroupInput true "Group"
// @Success 200 {object} map[string]models.Group
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /groupes/{id} [put]
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.GroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.groupService.UpdateGroup(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groupe": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a group
// @Tags groupes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]models.Group
// @Failure 404 {object} map[string]string
// @Router /groupes/{id} [delete]
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.groupService.DeleteGroup(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groupe": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary List group members
// @Tags groupes
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string][]models.Player
// @Failure 404 {object} map[string]string
// @Router /groupes/{id}/players [get]
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	players, err := h.groupService.ListMembers(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Add a player to a group
// @Description Adding an existing member succeeds without change.
// @Tags groupes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param member body services.AddMemberInput true "Member"
// @Success 200 {object} models.GroupMember
// @Success 201 {object} models.GroupMember
// @Failure 404 {object} map[string]string
// @Router /groupes/{id}/players [post]
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.AddMemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	added, err := h.groupService.AddMember(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	member := models.GroupMember{GroupID: id, PlayerID: input.PlayerID, Added: added}
	if err := writeJSON(w, status, member, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Remove a player from a group
// @Tags groupes
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param playerID path int true "Player ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /groupes/{id}/players/{playerID} [delete]
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.groupService.RemoveMember(r.Context(), id, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
