package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
}

// CreateGroupRequest is the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateGroupRequest is the request body for updating a group.
// Omitted fields are left untouched.
type UpdateGroupRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// AttachGroupRequest is the request body for adding an existing group to the
// caller's reference list
type AttachGroupRequest struct {
	ID int64 `json:"id"`
}

// AddGameRequest is the request body for adding a catalog game to a group.
// The game is looked up in the external catalog by name; the first match is
// embedded.
type AddGameRequest struct {
	Name string `json:"name"`
}
