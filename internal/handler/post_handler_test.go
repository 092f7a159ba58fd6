package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func signupAndSignin(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": email, "password": "Abcdef12",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = doJSON(t, router, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": email, "password": "Abcdef12",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	return decodeBody(t, resp)["token"].(string)
}

func TestPostCRUDAndOwnership(t *testing.T) {
	router, _ := setupRouter(t)

	ownerToken := signupAndSignin(t, router, "owner@b.com")
	otherToken := signupAndSignin(t, router, "other@b.com")

	// creating needs a session
	resp := doJSON(t, router, http.MethodPost, "/api/posts/create-post", "", map[string]string{
		"title": "nope", "description": "no session",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/posts/create-post", ownerToken, map[string]string{
		"title": "hello", "description": "first post",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	postID := data["id"].(string)
	require.Equal(t, "owner@b.com", data["author_email"])

	resp = doJSON(t, router, http.MethodGet, "/api/posts/single-post?_id="+postID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	require.Equal(t, "hello", data["title"])

	resp = doJSON(t, router, http.MethodGet, "/api/posts/single-post?_id=missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// another authenticated account may not mutate
	resp = doJSON(t, router, http.MethodPut, "/api/posts/update-post?_id="+postID, otherToken, map[string]string{
		"title": "stolen", "description": "nope",
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(t, router, http.MethodDelete, "/api/posts/delete-post?_id="+postID, otherToken, nil)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(t, router, http.MethodPut, "/api/posts/update-post?_id="+postID, ownerToken, map[string]string{
		"title": "hello again", "description": "edited",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	require.Equal(t, "hello again", data["title"])

	resp = doJSON(t, router, http.MethodDelete, "/api/posts/delete-post?_id="+postID, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/posts/single-post?_id="+postID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPostListEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	token := signupAndSignin(t, router, "lister@b.com")
	for i := 0; i < 3; i++ {
		resp := doJSON(t, router, http.MethodPost, "/api/posts/create-post", token, map[string]string{
			"title": "post", "description": "body",
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doJSON(t, router, http.MethodGet, "/api/posts/all-posts", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	data := body["data"].([]interface{})
	require.Len(t, data, 3)

	// far page is empty but well-formed
	resp = doJSON(t, router, http.MethodGet, "/api/posts/all-posts?page=5", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody(t, resp)
	require.Empty(t, body["data"])
}
