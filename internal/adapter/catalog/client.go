package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// ErrDishNotFound indicates the catalog doesn't know the requested dish.
var ErrDishNotFound = errors.New("dish not found")

// Dish is the catalog's view of a menu entry; its price becomes the line-item
// snapshot at order time.
type Dish struct {
	ID           int64
	Name         string
	Price        model.Money
	RestaurantID int64
}

// Client exposes operations to query the catalog service.
type Client interface {
	Fetch(ctx context.Context, dishID int64) (*Dish, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the catalog service.
type response struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	RestaurantID int64   `json:"restaurant_id"`
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the catalog service for one dish.
func (c *HTTPClient) Fetch(ctx context.Context, dishID int64) (*Dish, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/dishes/", strconv.FormatInt(dishID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &Dish{
			ID:           data.ID,
			Name:         data.Name,
			Price:        model.MoneyFromFloat(data.Price),
			RestaurantID: data.RestaurantID,
		}, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, ErrDishNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error: %s", resp.Status)
	}
}
