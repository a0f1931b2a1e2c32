package model

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("a category with this name already exists")
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	// ProductCount is derived from the catalog when listing; it is not
	// stored with the category.
	ProductCount int `json:"productCount"`
}
