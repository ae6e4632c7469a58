package handler

import (
	"encoding/json"
	"net/http"

	"github.com/borga-dev/borga/internal/api/middleware"
	"github.com/borga-dev/borga/internal/api/request"
	"github.com/borga-dev/borga/internal/api/response"
	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/services/auth"
	"github.com/borga-dev/borga/internal/services/user"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	authService *auth.Service
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, userService *user.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	token, err := h.authService.Register(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterResponse{
		Username: req.Username,
		Token:    token,
	})
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.userService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserList{Users: usernames})
}

// DeregisterMe handles DELETE /api/v1/users/me
func (h *UserHandler) DeregisterMe(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	if err := h.authService.DeregisterUser(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// MyGroups handles GET /api/v1/users/me/groups
func (h *UserHandler) MyGroups(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	groups, err := h.userService.Groups(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, response.GroupFromModel(g))
	}
	response.JSON(w, http.StatusOK, out)
}

// AttachGroup handles POST /api/v1/users/me/groups
// Adds an existing group to the caller's reference list; any user may
// reference any group, ownership is not required.
func (h *UserHandler) AttachGroup(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	var req request.AttachGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.userService.AttachGroup(r.Context(), username, model.GroupID(req.ID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// DetachGroup handles DELETE /api/v1/users/me/groups/{id}
// Removes a group from the caller's reference list; the group itself is
// untouched.
func (h *UserHandler) DetachGroup(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	id, err := groupID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.userService.DetachGroup(r.Context(), username, id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
