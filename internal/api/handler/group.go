package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/borga-dev/borga/internal/api/middleware"
	"github.com/borga-dev/borga/internal/api/request"
	"github.com/borga-dev/borga/internal/api/response"
	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/gate"
	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/services/group"
)

// GroupHandler handles group-related endpoints
type GroupHandler struct {
	groupService *group.Service
	gate         *gate.Gate
	catalog      *catalog.Client
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService *group.Service, admission *gate.Gate, catalogClient *catalog.Client) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		gate:         admission,
		catalog:      catalogClient,
	}
}

// groupID parses the {id} path variable into the canonical id type.
// Ids are normalized here, at the boundary, so the core only ever sees
// integers.
func groupID(r *http.Request) (model.GroupID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("group id must be an integer")
	}
	return model.GroupID(id), nil
}

// Create handles POST /api/v1/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	var req request.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.groupService.Create(r.Context(), username, req.Name, req.Description)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GroupCreated{ID: int64(id)})
}

// List handles GET /api/v1/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.groupService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.GroupDetails, 0, len(details))
	for _, d := range details {
		out = append(out, response.GroupDetailsFromModel(d))
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/groups/{id}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	details, err := h.groupService.Details(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupDetailsFromModel(details))
}

// Update handles PATCH /api/v1/groups/{id}
// Name and description can be changed independently; omitted fields are
// left untouched.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" && req.Description == "" {
		WriteError(w, NewInvalidRequestError("nothing to update"))
		return
	}

	var result response.Renamed
	if req.Name != "" {
		name, err := h.groupService.Rename(r.Context(), username, id, req.Name)
		if err != nil {
			WriteError(w, err)
			return
		}
		result.Name = name
	}
	if req.Description != "" {
		desc, err := h.groupService.Redescribe(r.Context(), username, id, req.Description)
		if err != nil {
			WriteError(w, err)
			return
		}
		result.Description = desc
	}

	response.JSON(w, http.StatusOK, result)
}

// Delete handles DELETE /api/v1/groups/{id}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.groupService.Delete(r.Context(), username, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddGame handles POST /api/v1/groups/{id}/games
// The game is resolved against the external catalog, which means passing
// the admission gate first.
func (h *GroupHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if err := h.gate.Enter(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.catalog.SearchByName(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	gameID, err := h.groupService.AddGame(r.Context(), username, id, games[0])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameAdded{ID: gameID})
}

// RemoveGame handles DELETE /api/v1/groups/{id}/games/{game_id}
func (h *GroupHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	gameID := mux.Vars(r)["game_id"]
	if err := h.groupService.RemoveGame(r.Context(), username, id, gameID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
