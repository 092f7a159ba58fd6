package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/postly/postly/internal/handler"
	"github.com/postly/postly/internal/middleware"
	"github.com/postly/postly/internal/repo"
	"github.com/postly/postly/internal/service"
	"github.com/postly/postly/internal/testutil"
)

var testJWTSecret = []byte("test-jwt-secret")

type captureSender struct {
	lastMsg string
	fail    bool
}

func (s *captureSender) Send(to, subject, body string) error {
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.lastMsg = body
	return nil
}

func (s *captureSender) lastCode() string {
	return strings.TrimPrefix(s.lastMsg, "Your verification code is ")
}

func setupRouter(t *testing.T) (http.Handler, *captureSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	t.Cleanup(cleanup)

	userRepo := repo.NewUserRepo(conn)
	postRepo := repo.NewPostRepo(conn)
	sender := &captureSender{}

	authService := service.NewAuthService(userRepo, sender, testJWTSecret, []byte("test-code-secret"), 8*time.Hour)
	postService := service.NewPostService(postRepo, userRepo, 16, time.Minute)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Posts:     handler.NewPostHandler(postService),
		JWTSecret: testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine, sender
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("client", "not-browser")
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}
