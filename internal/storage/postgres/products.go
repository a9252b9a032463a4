package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
)

const productColumns = `id, product_name, description, image_url, category, price, lister_id, created_at, updated_at`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Category, &p.Price, &p.ListerID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *productRepository) FindByNames(ctx context.Context, keys []string) ([]model.Product, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + productColumns + ` FROM products WHERE LOWER(TRIM(product_name)) = ANY($1) ORDER BY product_name, id`
	return r.query(ctx, query, keys)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRecord(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY product_name, id`
	return r.query(ctx, query)
}

func (r *productRepository) query(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
