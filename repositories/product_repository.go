package repositories

import (
	"context"
	"fmt"

	"lumina-store/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// ProductSource yields the full catalog. Implementations must be restartable.
type ProductSource interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

type StaticProductRepository struct {
	products []models.Product
}

func NewStaticProductRepository() *StaticProductRepository {
	return &StaticProductRepository{products: seedProducts}
}

func NewStaticProductRepositoryWith(products []models.Product) *StaticProductRepository {
	return &StaticProductRepository{products: products}
}

func (r *StaticProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string{}, p.Images...)
	p.Features = append([]string{}, p.Features...)
	p.Colors = append([]string{}, p.Colors...)
	if p.Sizes != nil {
		p.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	return p
}

// PgxQuerier is the subset of *pgxpool.Pool the repository needs.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresProductRepository struct {
	db PgxQuerier
}

func NewPostgresProductRepository(db PgxQuerier) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, category, price::text, original_price::text, rating, reviews,
	          image, images, description, features, colors, sizes, is_new, is_sale
	          FROM products ORDER BY position, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var (
			p             models.Product
			priceText     string
			originalPrice *string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &priceText, &originalPrice, &p.Rating, &p.Reviews,
			&p.Image, &p.Images, &p.Description, &p.Features, &p.Colors, &p.Sizes, &p.IsNew, &p.IsSale); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		if p.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, fmt.Errorf("product %d price: %w", p.ID, err)
		}
		if originalPrice != nil {
			op, err := decimal.NewFromString(*originalPrice)
			if err != nil {
				return nil, fmt.Errorf("product %d original price: %w", p.ID, err)
			}
			p.OriginalPrice = &op
		}
		if p.Colors == nil {
			p.Colors = []string{}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// Seed inserts products that are not present yet, keeping their slice order as position.
func (r *PostgresProductRepository) Seed(ctx context.Context, products []models.Product) error {
	query := `
		INSERT INTO products (id, position, name, category, price, original_price, rating, reviews,
		                      image, images, description, features, colors, sizes, is_new, is_sale)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`
	for i, p := range products {
		var originalPrice *string
		if p.OriginalPrice != nil {
			s := p.OriginalPrice.StringFixed(2)
			originalPrice = &s
		}
		colors := p.Colors
		if colors == nil {
			colors = []string{}
		}
		if _, err := r.db.Exec(ctx, query,
			p.ID, i, p.Name, p.Category, p.Price.StringFixed(2), originalPrice, p.Rating, p.Reviews,
			p.Image, p.Images, p.Description, p.Features, colors, p.Sizes, p.IsNew, p.IsSale,
		); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return nil
}

// SeedProducts exposes the built-in catalog for seeding other sources.
func SeedProducts() []models.Product {
	out := make([]models.Product, 0, len(seedProducts))
	for _, p := range seedProducts {
		out = append(out, cloneProduct(p))
	}
	return out
}
