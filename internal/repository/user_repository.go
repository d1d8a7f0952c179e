package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

var userKind = Kind{
	Table:        "users",
	Columns:      "id, name, email, password_hash, image_url, is_admin, created_at",
	Fields:       map[string]string{"id": "id", "email": "email", "createdAt": "created_at"},
	DefaultOrder: "created_at DESC, id DESC",
}

type UserRepository struct {
	pool     *pgxpool.Pool
	executor *Executor
}

func NewUserRepository(pool *pgxpool.Pool, executor *Executor) *UserRepository {
	return &UserRepository{pool: pool, executor: executor}
}

func scanUser(rows pgx.Rows) (models.User, error) {
	var user models.User
	err := rows.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ImageURL,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, name, email, password_hash, image_url, is_admin, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ImageURL,
		user.IsAdmin,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, image_url, is_admin, created_at
		FROM users WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ImageURL,
		&user.IsAdmin,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, image_url, is_admin, created_at
		FROM users WHERE email = $1
	`

	row := r.pool.QueryRow(ctx, query, email)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ImageURL,
		&user.IsAdmin,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ListPage returns users newest first. Digest redaction is the caller's
// concern on the way out.
func (r *UserRepository) ListPage(ctx context.Context, page, pageSize int) (Page[models.User], error) {
	return FetchPage(ctx, r.executor, userKind, nil, nil, page, pageSize, scanUser)
}
