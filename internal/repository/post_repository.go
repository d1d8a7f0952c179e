package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/api/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

var postKind = Kind{
	Table:        "posts",
	Columns:      "id, user_id, user_name, user_image, title, summary, content, keywords, created_at, updated_at, deleted_at",
	Fields:       map[string]string{"id": "id", "userId": "user_id", "keywords": "keywords", "createdAt": "created_at", "deletedAt": "deleted_at"},
	DefaultOrder: "created_at DESC, id DESC",
}

// notDeleted scopes every read to live posts; soft-deleted rows stay
// invisible until the purge job removes them.
var notDeleted = []Predicate{{Field: "deletedAt", Op: OpIsNull}}

type PostRepository struct {
	pool     *pgxpool.Pool
	executor *Executor
}

func NewPostRepository(pool *pgxpool.Pool, executor *Executor) *PostRepository {
	return &PostRepository{pool: pool, executor: executor}
}

func scanPost(rows pgx.Rows) (models.Post, error) {
	var post models.Post
	err := rows.Scan(
		&post.ID,
		&post.UserID,
		&post.UserName,
		&post.UserImage,
		&post.Title,
		&post.Summary,
		&post.Content,
		&post.Keywords,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.DeletedAt,
	)
	return post, err
}

func (r *PostRepository) Create(ctx context.Context, post models.Post) error {
	const query = `
		INSERT INTO posts (
			id, user_id, user_name, user_image, title, summary, content, keywords, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.UserName,
		post.UserImage,
		post.Title,
		post.Summary,
		post.Content,
		post.Keywords,
	)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	const query = `
		SELECT id, user_id, user_name, user_image, title, summary, content, keywords, created_at, updated_at, deleted_at
		FROM posts WHERE id = $1 AND deleted_at IS NULL
	`

	row := r.pool.QueryRow(ctx, query, id)
	var post models.Post
	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.UserName,
		&post.UserImage,
		&post.Title,
		&post.Summary,
		&post.Content,
		&post.Keywords,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, post models.Post) error {
	const query = `
		UPDATE posts
		SET title = $2, summary = $3, content = $4, keywords = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	cmd, err := r.pool.Exec(ctx, query, post.ID, post.Title, post.Summary, post.Content, post.Keywords)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
		UPDATE posts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL
	`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) ListPage(ctx context.Context, page, pageSize int) (Page[models.Post], error) {
	return FetchPage(ctx, r.executor, postKind, notDeleted, nil, page, pageSize, scanPost)
}

// KeywordValues feeds the keyword aggregation; NULL entries are kept so
// the aggregator can skip them explicitly.
func (r *PostRepository) KeywordValues(ctx context.Context) ([]*string, error) {
	return r.executor.FetchColumn(ctx, postKind, "keywords", notDeleted)
}

// PurgeDeleted removes soft-deleted posts older than the retention window
// along with their comments. Called from the nightly job.
func (r *PostRepository) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE deleted_at < $1)`, cutoff); err != nil {
		return 0, err
	}

	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE deleted_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
