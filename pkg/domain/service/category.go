package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type CategoryService interface {
	Add(name string) (*model.Category, error)
	Rename(id, name string) error
	Remove(id string) error
	List() []model.Category
}

// NewCategoryService takes a catalog lister so List can report how many
// products carry each category tag. A nil lister leaves the counts at zero.
func NewCategoryService(products func() []model.Product) CategoryService {
	return &categoryService{products: products}
}

type categoryService struct {
	mu         sync.Mutex
	categories []model.Category
	products   func() []model.Product
}

func (s *categoryService) Add(name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name, "") {
		return nil, model.ErrDuplicateCategory
	}

	category := model.Category{
		ID:   uuid.NewString(),
		Name: name,
		Slug: slugify(name),
	}
	s.categories = append(s.categories, category)
	return &category, nil
}

func (s *categoryService) Rename(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name, id) {
		return model.ErrDuplicateCategory
	}

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			s.categories[i].Slug = slugify(name)
			return nil
		}
	}
	return model.ErrCategoryNotFound
}

func (s *categoryService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return model.ErrCategoryNotFound
}

func (s *categoryService) List() []model.Category {
	s.mu.Lock()
	categories := make([]model.Category, len(s.categories))
	copy(categories, s.categories)
	s.mu.Unlock()

	if s.products == nil {
		return categories
	}
	products := s.products()
	for i := range categories {
		for _, product := range products {
			if strings.EqualFold(product.Category, categories[i].Name) ||
				strings.EqualFold(product.Category, categories[i].Slug) {
				categories[i].ProductCount++
			}
		}
	}
	return categories
}

// callers hold the lock.
func (s *categoryService) nameTaken(name, excludeID string) bool {
	for _, category := range s.categories {
		if category.ID != excludeID && strings.EqualFold(category.Name, name) {
			return true
		}
	}
	return false
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
