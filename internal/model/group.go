package model

import "time"

// GroupID uniquely identifies a group. IDs are allocated monotonically and
// never reused, even after deletion.
type GroupID int64

// Game is a catalog game embedded in a group. Games have no identity outside
// their group; the same catalog game may be embedded in several groups as
// independent copies.
type Game struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price string `json:"price"`
}

// Group is a named collection of games with a single owning user.
// Owner is immutable for the lifetime of the group.
type Group struct {
	ID          GroupID
	Owner       string
	Name        string
	Description string
	Games       []Game // insertion order preserved for listing
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetGame returns the embedded game with the given id, or nil
func (g *Group) GetGame(gameID string) *Game {
	for i := range g.Games {
		if g.Games[i].ID == gameID {
			return &g.Games[i]
		}
	}
	return nil
}

// HasGame reports whether the group embeds a game with the given id
func (g *Group) HasGame(gameID string) bool {
	return g.GetGame(gameID) != nil
}

// RemoveGame removes the game with the given id, preserving the order of the
// remaining games. Returns false if the game was not present.
func (g *Group) RemoveGame(gameID string) bool {
	for i := range g.Games {
		if g.Games[i].ID == gameID {
			g.Games = append(g.Games[:i], g.Games[i+1:]...)
			return true
		}
	}
	return false
}

// GameNames returns the display names of the embedded games in insertion order
func (g *Group) GameNames() []string {
	names := make([]string, 0, len(g.Games))
	for _, game := range g.Games {
		names = append(names, game.Name)
	}
	return names
}

// GroupDetails is the read projection of a group exposed to clients:
// games are reduced to their display names.
type GroupDetails struct {
	ID          GroupID
	Name        string
	Description string
	Games       []string
}

// Details returns the group's summary projection
func (g *Group) Details() GroupDetails {
	return GroupDetails{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Games:       g.GameNames(),
	}
}
