package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

const categoryColumns = `id, name, description, is_active, created_at, updated_at`

type CategoriesRepo struct {
	db DB
	observer
}

func NewCategoriesRepo(db DB, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{
		db:       db,
		observer: observer{prom: prom},
	}
}

func (r *CategoriesRepo) Create(ctx context.Context, c category.Category) (category.Category, error) {
	if c.ID == "" {
		c.ID = utils.NewID()
	}
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	err := r.observe("categories.create", func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt,
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return category.Category{}, category.ErrNameDuplicate
		}
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (category.Category, error) {
	return r.getOne(ctx, "categories.get_by_id", `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (r *CategoriesRepo) GetByName(ctx context.Context, name string) (category.Category, error) {
	return r.getOne(ctx, "categories.get_by_name", `SELECT `+categoryColumns+` FROM categories WHERE lower(name) = lower($1)`, name)
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0)

	err := r.observe("categories.list", func() error {
		rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c category.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, id string, p category.Patch) (category.Category, error) {
	var c category.Category

	err := r.observe("categories.update", func() error {
		return r.db.QueryRow(ctx,
			`UPDATE categories
			SET name = COALESCE($2, name),
				description = COALESCE($3, description),
				is_active = COALESCE($4, is_active),
				updated_at = $5
			WHERE id = $1
			RETURNING `+categoryColumns,
			id, p.Name, p.Description, p.IsActive, now(),
		).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return category.Category{}, category.ErrNotFound
		case isUniqueViolation(err):
			return category.Category{}, category.ErrNameDuplicate
		}
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) (category.Category, error) {
	return r.getOne(ctx, "categories.delete", `DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
}

func (r *CategoriesRepo) getOne(ctx context.Context, op, query string, args ...any) (category.Category, error) {
	var c category.Category

	err := r.observe(op, func() error {
		return r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}
