// Package catalog talks to the external card-catalog HTTP API used for
// admin imports and the database-bypassing browse pages.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/retry"
)

const DefaultBaseURL = "https://api.pokemontcg.io"

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return retry.Do(ctx, "catalog "+path, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		if c.APIKey != "" {
			req.Header.Set("X-Api-Key", c.APIKey)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("catalog API %s: status %d: %s", path, resp.StatusCode, body)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// ListSets fetches all known card sets.
func (c *Client) ListSets(ctx context.Context) ([]Set, error) {
	var out setsResponse
	if err := c.get(ctx, "/v2/sets", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SearchCards runs a catalog query, e.g. `set.id:base1` or `name:pikachu`.
func (c *Client) SearchCards(ctx context.Context, q string, page, pageSize int) ([]APICard, error) {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", fmt.Sprint(pageSize))
	}

	var out cardsResponse
	if err := c.get(ctx, "/v2/cards", query, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ToCard maps a catalog card onto a shop inventory row. Market price wins
// when the API has one; otherwise the rarity heuristic fills it in.
func ToCard(a APICard) models.Card {
	return models.Card{
		Name:        a.Name,
		SetName:     a.Set.Name,
		CardNumber:  a.Number,
		Rarity:      a.Rarity,
		ImageURL:    a.Images.Large,
		Price:       PriceFor(a),
		Condition:   models.ConditionNearMint,
		Description: fmt.Sprintf("%s - %s #%s", a.Set.Name, a.Rarity, a.Number),
	}
}
