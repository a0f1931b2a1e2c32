package model

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateTitle  = errors.New("a product with this title already exists")
)

// Product is a catalog entry. ID and the numeric fields are canonical here:
// feeds that deliver numeric ids or numeric-string prices are coerced once at
// the ingestion boundary, never at use-site.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// ProductFeed is the remote read-only product listing. An absent product is a
// normal outcome, reported as (nil, nil).
type ProductFeed interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchByID(ctx context.Context, id string) (*Product, error)
}
