package httpclient

import (
	"context"
	"net/http"
)

// Health es lo que responde GET /health.
type Health struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

type Kind struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Food  string `json:"food"`
	Sound string `json:"sound"`
}

type Pet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Owner    string `json:"owner"`
	KindID   string `json:"kind_id"`
	KindName string `json:"kind_name,omitempty"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.DoJSON(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

func (c *Client) ListKinds(ctx context.Context) ([]Kind, error) {
	var out []Kind
	err := c.DoJSON(ctx, http.MethodGet, "/api/kinds", nil, &out)
	return out, err
}

func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	err := c.DoJSON(ctx, http.MethodGet, "/api/pets", nil, &out)
	return out, err
}
