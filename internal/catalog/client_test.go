package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borga-dev/borga/internal/testutil"
)

const searchBody = `{
	"games": [
		{"id": "G1", "name": "Catan", "url": "https://example.com/catan", "price": "45.40"},
		{"id": "G2", "name": "Root", "url": "https://example.com/root", "price": "59.99"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.ClientID = "test-client"
	return New(cfg, testutil.NopLogger())
}

func TestGameByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "G1", r.URL.Query().Get("ids"))
		assert.Equal(t, "test-client", r.URL.Query().Get("client_id"))
		_, _ = w.Write([]byte(searchBody))
	})

	game, err := client.GameByID(context.Background(), "G1")
	require.NoError(t, err)
	assert.Equal(t, "G1", game.ID)
	assert.Equal(t, "Catan", game.Name)
	assert.Equal(t, "45.40", game.Price)
}

func TestGameByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"games": []}`))
	})

	_, err := client.GameByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestSearchByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "catan", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(searchBody))
	})

	games, err := client.SearchByName(context.Background(), "catan")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Catan", games[0].Name)
	assert.Equal(t, "Root", games[1].Name)
}

func TestSearchByNameNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"games": []}`))
	})

	_, err := client.SearchByName(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestPopular(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "popularity", r.URL.Query().Get("order_by"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(searchBody))
	})

	games, err := client.Popular(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestPopularEmptyIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"games": []}`))
	})

	games, err := client.Popular(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestUpstreamErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SearchByName(context.Background(), "catan")
	assert.ErrorContains(t, err, "503")
}
