package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

const newsColumns = `id, title, slug, summary, content, highlights, author_id, category_id,
	main_image, source, variant, status, publication_date, created_at, updated_at`

type NewsRepo struct {
	db DB
	observer
}

func NewNewsRepo(db DB, prom *observability.Prom) *NewsRepo {
	return &NewsRepo{
		db:       db,
		observer: observer{prom: prom},
	}
}

func (r *NewsRepo) Create(ctx context.Context, n news.News) (news.News, error) {
	if n.ID == "" {
		n.ID = utils.NewID()
	}
	if n.Highlights == nil {
		n.Highlights = []string{}
	}
	n.CreatedAt = now()
	n.UpdatedAt = n.CreatedAt

	err := r.observe("news.create", func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO news (id, title, slug, summary, content, highlights, author_id, category_id,
				main_image, source, variant, status, publication_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			n.ID, n.Title, n.Slug, n.Summary, n.Content, n.Highlights, n.AuthorID, n.CategoryID,
			n.MainImage, n.Source, string(n.Variant), string(n.Status), n.PublicationDate, n.CreatedAt, n.UpdatedAt,
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return news.News{}, news.ErrSlugDuplicate
		}
		return news.News{}, err
	}
	return n, nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id string) (news.News, error) {
	return r.getOne(ctx, "news.get_by_id", `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)
}

func (r *NewsRepo) GetBySlug(ctx context.Context, slug string) (news.News, error) {
	return r.getOne(ctx, "news.get_by_slug", `SELECT `+newsColumns+` FROM news WHERE slug = $1`, slug)
}

func (r *NewsRepo) List(ctx context.Context, f news.ListFilter) ([]news.News, error) {
	var conds []string
	var args []any

	argsPosition := 1

	if f.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*f.Status))
		argsPosition++
	}

	if f.AuthorID != nil {
		conds = append(conds, fmt.Sprintf("author_id = $%d", argsPosition))
		args = append(args, *f.AuthorID)
	}

	query := `SELECT ` + newsColumns + ` FROM news`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	return r.query(ctx, "news.list", query, args...)
}

func (r *NewsRepo) ListByCategory(ctx context.Context, categoryID string) ([]news.News, error) {
	return r.query(ctx, "news.list_by_category",
		`SELECT `+newsColumns+` FROM news WHERE category_id = $1 ORDER BY created_at ASC, id ASC`, categoryID)
}

func (r *NewsRepo) Update(ctx context.Context, id string, p news.Patch) (news.News, error) {
	var n news.News

	err := r.observe("news.update", func() error {
		return scanNews(r.db.QueryRow(ctx,
			`UPDATE news
			SET title = COALESCE($2, title),
				slug = COALESCE($3, slug),
				summary = COALESCE($4, summary),
				content = COALESCE($5, content),
				highlights = COALESCE($6, highlights),
				category_id = COALESCE($7, category_id),
				main_image = COALESCE($8, main_image),
				source = COALESCE($9, source),
				variant = COALESCE($10, variant),
				status = COALESCE($11, status),
				publication_date = COALESCE($12, publication_date),
				updated_at = $13
			WHERE id = $1
			RETURNING `+newsColumns,
			id, p.Title, p.Slug, p.Summary, p.Content, p.Highlights, p.CategoryID,
			p.MainImage, p.Source, stringPtr(p.Variant), stringPtr(p.Status), p.PublicationDate, now(),
		), &n)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return news.News{}, news.ErrNotFound
		case isUniqueViolation(err):
			return news.News{}, news.ErrSlugDuplicate
		}
		return news.News{}, err
	}
	return n, nil
}

func (r *NewsRepo) Delete(ctx context.Context, id string) (news.News, error) {
	return r.getOne(ctx, "news.delete", `DELETE FROM news WHERE id = $1 RETURNING `+newsColumns, id)
}

func (r *NewsRepo) getOne(ctx context.Context, op, query string, args ...any) (news.News, error) {
	var n news.News

	err := r.observe(op, func() error {
		return scanNews(r.db.QueryRow(ctx, query, args...), &n)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return news.News{}, news.ErrNotFound
		}
		return news.News{}, err
	}
	return n, nil
}

func (r *NewsRepo) query(ctx context.Context, op, query string, args ...any) ([]news.News, error) {
	out := make([]news.News, 0)

	err := r.observe(op, func() error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n news.News
			if err := scanNews(rows, &n); err != nil {
				return err
			}
			out = append(out, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanNews(row pgx.Row, n *news.News) error {
	var variant, status string
	var published *time.Time

	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Slug,
		&n.Summary,
		&n.Content,
		&n.Highlights,
		&n.AuthorID,
		&n.CategoryID,
		&n.MainImage,
		&n.Source,
		&variant,
		&status,
		&published,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if n.Highlights == nil {
		n.Highlights = []string{}
	}
	n.Variant = news.Variant(variant)
	n.Status = news.Status(status)
	n.PublicationDate = published
	return nil
}
