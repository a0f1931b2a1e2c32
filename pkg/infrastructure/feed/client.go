// Package feed implements the remote catalog feed client. The feed's wire
// format is not under this system's control: ids may be numbers, prices and
// stock may arrive as numeric strings. Coercion to the canonical model types
// happens here, once, at the ingestion boundary.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type feedProduct struct {
	ID          flexNumber `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Price       flexNumber `json:"price"`
	Stock       flexNumber `json:"stock"`
	Images      []string   `json:"images"`
}

func (p feedProduct) toModel() model.Product {
	return model.Product{
		ID:          p.ID.id(),
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       float64(p.Price),
		Stock:       int(p.Stock),
		Images:      p.Images,
	}
}

// flexNumber accepts JSON numbers and numeric strings.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", raw)
	}
	*n = flexNumber(value)
	return nil
}

// id renders integral feed ids without a decimal point.
func (n flexNumber) id() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (c *Client) FetchAll(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch product feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("product feed returned status %d", resp.StatusCode)
	}

	var payload struct {
		Products []feedProduct `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode product feed")
	}

	products := make([]model.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, p.toModel())
	}
	return products, nil
}

func (c *Client) FetchByID(ctx context.Context, id string) (*model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+id, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch product")
	}
	defer resp.Body.Close()

	// An unknown product is a normal outcome, not an error.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("product feed returned status %d", resp.StatusCode)
	}

	var p feedProduct
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, errors.Wrap(err, "decode product")
	}
	product := p.toModel()
	return &product, nil
}
