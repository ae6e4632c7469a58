package handler

import (
	"net/http"
	"strconv"

	"github.com/borga-dev/borga/internal/api/response"
	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/gate"
	"github.com/borga-dev/borga/internal/model"
)

const defaultTopLimit = 10

// GamesHandler handles catalog search endpoints
type GamesHandler struct {
	gate    *gate.Gate
	catalog *catalog.Client
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(admission *gate.Gate, catalogClient *catalog.Client) *GamesHandler {
	return &GamesHandler{
		gate:    admission,
		catalog: catalogClient,
	}
}

// Search handles GET /api/v1/games
// Exactly one of the top, id or name query parameters selects the query;
// every variant waits at the admission gate before touching the catalog.
func (h *GamesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top, hasTop := q["top"]
	id, hasID := q["id"]
	name, hasName := q["name"]

	count := 0
	for _, present := range []bool{hasTop, hasID, hasName} {
		if present {
			count++
		}
	}
	if count != 1 {
		WriteError(w, NewInvalidRequestError("exactly one of top, id or name is required"))
		return
	}

	limit := defaultTopLimit
	if hasTop && top[0] != "" {
		parsed, err := strconv.Atoi(top[0])
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("top must be a positive integer"))
			return
		}
		limit = parsed
	}

	if err := h.gate.Enter(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	var (
		games []model.Game
		err   error
	)
	switch {
	case hasTop:
		games, err = h.catalog.Popular(r.Context(), limit)
	case hasID:
		var game *model.Game
		game, err = h.catalog.GameByID(r.Context(), id[0])
		if game != nil {
			games = []model.Game{*game}
		}
	case hasName:
		games, err = h.catalog.SearchByName(r.Context(), name[0])
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}
