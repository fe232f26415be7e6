package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"lumina-store/models"
	"lumina-store/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"

	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
	FeaturedCount   = 4
	RelatedCount    = 3
)

// CatalogService holds the catalog snapshot loaded once at start.
type CatalogService struct {
	products   []models.Product
	byID       map[int]int
	categories []models.Category
}

func NewCatalogService(ctx context.Context, source repositories.ProductSource) (*CatalogService, error) {
	products, err := source.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("load catalog: duplicate product id %d", p.ID)
		}
		byID[p.ID] = i
	}

	return &CatalogService{
		products:   products,
		byID:       byID,
		categories: repositories.SeedCategories(),
	}, nil
}

func (s *CatalogService) ListAll() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *CatalogService) Get(id int) (models.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return s.products[i], nil
}

func (s *CatalogService) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Category looks a category up by its slug id.
func (s *CatalogService) Category(id string) (models.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

// Related returns up to n other products of the same category, in catalog order.
func (s *CatalogService) Related(id, n int) ([]models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, other := range s.products {
		if len(out) == n {
			break
		}
		if other.ID != id && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out, nil
}

func (s *CatalogService) Featured(n int) []models.Product {
	if n <= 0 || n > len(s.products) {
		n = len(s.products)
	}
	out := make([]models.Product, n)
	copy(out, s.products[:n])
	return out
}

// Search applies the shop filters in order: text query, category, flag, price range, then sort.
func (s *CatalogService) Search(f models.ProductFilter) []models.Product {
	minPrice := decimal.NewFromInt(DefaultMinPrice)
	maxPrice := decimal.NewFromInt(DefaultMaxPrice)
	if f.MinPrice != nil {
		minPrice = decimal.NewFromFloat(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		maxPrice = decimal.NewFromFloat(*f.MaxPrice)
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := []models.Product{}
	for _, p := range s.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		switch f.Flag {
		case "sale":
			if !p.IsSale {
				continue
			}
		case "new":
			if !p.IsNew {
				continue
			}
		}
		if p.Price.LessThan(minPrice) || p.Price.GreaterThan(maxPrice) {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.GreaterThan(result[j].Price) })
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool { return result[i].IsNew && !result[j].IsNew })
	}
	return result
}

// NormalizeSort maps unknown sort keys to the catalog order.
func NormalizeSort(s string) string {
	switch s {
	case SortNewest, SortPriceLow, SortPriceHigh, SortRating:
		return s
	}
	return SortFeatured
}
