package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/postly/postly/internal/model"
	"github.com/postly/postly/internal/pkg/dbutil"
	appErr "github.com/postly/postly/internal/pkg/errors"
)

var postColumns = []string{"id", "user_id", "title", "description", "ctime", "mtime"}

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *model.Post) error {
	data := map[string]interface{}{
		"id":          post.ID,
		"user_id":     post.UserID,
		"title":       post.Title,
		"description": post.Description,
		"ctime":       post.Ctime,
		"mtime":       post.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("posts", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, postID string) (*model.Post, error) {
	where := map[string]interface{}{"id": postID}
	sqlStr, args, err := builder.BuildSelect("posts", where, postColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var post model.Post
	if err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Description, &post.Ctime, &post.Mtime); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest-first.
func (r *PostRepo) List(ctx context.Context, limit, offset uint) ([]model.Post, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
		"_limit":   []uint{offset, limit},
	}
	sqlStr, args, err := builder.BuildSelect("posts", where, postColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	posts := make([]model.Post, 0, limit)
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Description, &post.Ctime, &post.Mtime); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update overwrites title and description. The owner id is part of the WHERE
// clause so a non-owner write can never match.
func (r *PostRepo) Update(ctx context.Context, post *model.Post) error {
	where := map[string]interface{}{
		"id":      post.ID,
		"user_id": post.UserID,
	}
	update := map[string]interface{}{
		"title":       post.Title,
		"description": post.Description,
		"mtime":       post.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("posts", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, postID, userID string) error {
	where := map[string]interface{}{
		"id":      postID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("posts", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
