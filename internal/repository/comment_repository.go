package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/api/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

var commentKind = Kind{
	Table:        "comments",
	Columns:      "id, post_id, user_id, user_name, user_image, content, created_at",
	Fields:       map[string]string{"id": "id", "postId": "post_id", "userId": "user_id", "createdAt": "created_at"},
	DefaultOrder: "created_at DESC, id DESC",
}

type CommentRepository struct {
	pool     *pgxpool.Pool
	executor *Executor
}

func NewCommentRepository(pool *pgxpool.Pool, executor *Executor) *CommentRepository {
	return &CommentRepository{pool: pool, executor: executor}
}

func scanComment(rows pgx.Rows) (models.Comment, error) {
	var comment models.Comment
	err := rows.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.UserName,
		&comment.UserImage,
		&comment.Content,
		&comment.CreatedAt,
	)
	return comment, err
}

func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) error {
	const query = `
		INSERT INTO comments (
			id, post_id, user_id, user_name, user_image, content, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.UserName,
		comment.UserImage,
		comment.Content,
	)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (models.Comment, error) {
	const query = `
		SELECT id, post_id, user_id, user_name, user_image, content, created_at
		FROM comments WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var comment models.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.UserName,
		&comment.UserImage,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) ListPage(ctx context.Context, page, pageSize int) (Page[models.Comment], error) {
	return FetchPage(ctx, r.executor, commentKind, nil, nil, page, pageSize, scanComment)
}

func (r *CommentRepository) ListForPost(ctx context.Context, postID string, page, pageSize int) (Page[models.Comment], error) {
	preds := []Predicate{{Field: "postId", Op: OpEq, Value: postID}}
	return FetchPage(ctx, r.executor, commentKind, preds, nil, page, pageSize, scanComment)
}
