package response

import "github.com/borga-dev/borga/internal/model"

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserList is the list of registered usernames
type UserList struct {
	Users []string `json:"users"`
}

// GroupCreated is returned after a successful group creation
type GroupCreated struct {
	ID int64 `json:"id"`
}

// Game is a catalog game as exposed by the API
type Game struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price string `json:"price"`
}

// GameFromModel converts a model game to its API shape
func GameFromModel(g model.Game) Game {
	return Game{
		ID:    g.ID,
		Name:  g.Name,
		URL:   g.URL,
		Price: g.Price,
	}
}

// GamesFromModel converts a slice of model games
func GamesFromModel(games []model.Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, GameFromModel(g))
	}
	return out
}

// GroupDetails is the summary projection of a group: embedded games are
// reduced to their display names.
type GroupDetails struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Games       []string `json:"games"`
}

// GroupDetailsFromModel converts a model projection to its API shape
func GroupDetailsFromModel(d model.GroupDetails) GroupDetails {
	return GroupDetails{
		ID:          int64(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Games:       d.Games,
	}
}

// Group is the full group entity as exposed by the API
type Group struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Games       []Game `json:"games"`
}

// GroupFromModel converts a model group to its API shape
func GroupFromModel(g *model.Group) Group {
	return Group{
		ID:          int64(g.ID),
		Owner:       g.Owner,
		Name:        g.Name,
		Description: g.Description,
		Games:       GamesFromModel(g.Games),
	}
}

// GameAdded is returned after embedding a catalog game in a group
type GameAdded struct {
	ID string `json:"id"`
}

// Renamed carries the new value after a rename or redescribe
type Renamed struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
