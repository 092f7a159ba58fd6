package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postly/postly/internal/model"
	appErr "github.com/postly/postly/internal/pkg/errors"
	"github.com/postly/postly/internal/pkg/timeutil"
	"github.com/postly/postly/internal/repo"
	"github.com/postly/postly/internal/testutil"
)

func seedPost(t *testing.T, posts *repo.PostRepo, userID, title string, ctime int64) *model.Post {
	t.Helper()
	post := &model.Post{
		ID:          newTestID(),
		UserID:      userID,
		Title:       title,
		Description: "body of " + title,
		Ctime:       ctime,
		Mtime:       ctime,
	}
	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func TestPostListPagination(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	posts := repo.NewPostRepo(conn)
	ctx := context.Background()

	author := seedUser(t, users, "author@example.com")
	base := timeutil.NowUnix()
	for i := 0; i < 15; i++ {
		seedPost(t, posts, author.ID, fmt.Sprintf("post-%02d", i), base+int64(i))
	}

	page1, err := posts.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	require.Equal(t, "post-14", page1[0].Title)

	page2, err := posts.List(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	require.Equal(t, "post-04", page2[0].Title)
}

func TestPostUpdateOwnerScoped(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	posts := repo.NewPostRepo(conn)
	ctx := context.Background()

	owner := seedUser(t, users, "owner@example.com")
	post := seedPost(t, posts, owner.ID, "mine", timeutil.NowUnix())

	post.Title = "updated"
	post.Mtime = timeutil.NowUnix()
	require.NoError(t, posts.Update(ctx, post))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "updated", got.Title)

	// a different owner id in the where clause matches nothing
	stranger := *post
	stranger.UserID = "someone-else"
	require.ErrorIs(t, posts.Update(ctx, &stranger), appErr.ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	posts := repo.NewPostRepo(conn)
	ctx := context.Background()

	owner := seedUser(t, users, "deleter@example.com")
	post := seedPost(t, posts, owner.ID, "to-delete", timeutil.NowUnix())

	require.ErrorIs(t, posts.Delete(ctx, post.ID, "someone-else"), appErr.ErrNotFound)
	require.NoError(t, posts.Delete(ctx, post.ID, owner.ID))
	_, err := posts.GetByID(ctx, post.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
