package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

const userColumns = `id, email, password_hash, role, name, last_name, created_at, updated_at`

type UsersRepo struct {
	db DB
	observer
}

func NewUsersRepo(db DB, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		db:       db,
		observer: observer{prom: prom},
	}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt

	err := r.observe("users.create", func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, role, name, last_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			u.ID, u.Email, u.PasswordHash, string(u.Role), u.Name, u.LastName, u.CreatedAt, u.UpdatedAt,
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailDuplicate
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UsersRepo) FindByRole(ctx context.Context, role user.Role) (user.User, error) {
	return r.getOne(ctx, "users.find_by_role",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at ASC, id ASC LIMIT 1`, string(role))
}

// List does not select password_hash.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0)

	err := r.observe("users.list", func() error {
		rows, err := r.db.Query(ctx,
			`SELECT id, email, role, name, last_name, created_at, updated_at
			FROM users
			ORDER BY created_at ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var u user.User
			var role string
			if err := rows.Scan(&u.ID, &u.Email, &role, &u.Name, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return err
			}
			u.Role = user.Role(role)
			out = append(out, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update leaves a column untouched when its patch field is nil.
func (r *UsersRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, error) {
	var u user.User

	err := r.observe("users.update", func() error {
		return scanUser(r.db.QueryRow(ctx,
			`UPDATE users
			SET email = COALESCE($2, email),
				password_hash = COALESCE($3, password_hash),
				role = COALESCE($4, role),
				name = COALESCE($5, name),
				last_name = COALESCE($6, last_name),
				updated_at = $7
			WHERE id = $1
			RETURNING `+userColumns,
			id, p.Email, p.PasswordHash, stringPtr(p.Role), p.Name, p.LastName, now(),
		), &u)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return user.User{}, user.ErrNotFound
		case isUniqueViolation(err):
			return user.User{}, user.ErrEmailDuplicate
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "users.delete", `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
}

func (r *UsersRepo) getOne(ctx context.Context, op, query string, args ...any) (user.User, error) {
	var u user.User

	err := r.observe(op, func() error {
		return scanUser(r.db.QueryRow(ctx, query, args...), &u)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUser(row pgx.Row, u *user.User) error {
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return err
	}
	u.Role = user.Role(role)
	return nil
}
