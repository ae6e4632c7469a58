package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/borga-dev/borga/internal/model"
)

// ErrGameNotFound is returned when the catalog has no game for the query
var ErrGameNotFound = errors.New("game not found in catalog")

// Config holds configuration for the catalog client
type Config struct {
	// BaseURL is the catalog API root
	BaseURL string
	// ClientID is the API key the catalog expects on every request
	ClientID string
	// Timeout bounds each catalog request
	Timeout time.Duration
}

// DefaultConfig returns default catalog client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.boardgameatlas.com/api",
		Timeout: 10 * time.Second,
	}
}

// Client queries the external board-game catalog. Callers are expected to
// pass the admission gate before invoking it; the client itself does no
// pacing.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new catalog client
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		clientID:   cfg.ClientID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// searchResponse is the catalog's wire shape for every search variant
type searchResponse struct {
	Games []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		URL      string `json:"url"`
		PriceRaw string `json:"price"`
	} `json:"games"`
}

// GameByID looks a game up by its catalog id
func (c *Client) GameByID(ctx context.Context, id string) (*model.Game, error) {
	games, err := c.search(ctx, url.Values{"ids": {id}})
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return &games[0], nil
}

// SearchByName returns every catalog game matching the name
func (c *Client) SearchByName(ctx context.Context, name string) ([]model.Game, error) {
	games, err := c.search(ctx, url.Values{"name": {name}})
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return games, nil
}

// Popular returns the catalog's most popular games, at most limit entries
func (c *Client) Popular(ctx context.Context, limit int) ([]model.Game, error) {
	return c.search(ctx, url.Values{
		"order_by": {"popularity"},
		"limit":    {strconv.Itoa(limit)},
	})
}

func (c *Client) search(ctx context.Context, params url.Values) ([]model.Game, error) {
	if c.clientID != "" {
		params.Set("client_id", c.clientID)
	}

	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request",
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("catalog response decode failed: %w", err)
	}

	games := make([]model.Game, 0, len(sr.Games))
	for _, g := range sr.Games {
		games = append(games, model.Game{
			ID:    g.ID,
			Name:  g.Name,
			URL:   g.URL,
			Price: g.PriceRaw,
		})
	}
	return games, nil
}
