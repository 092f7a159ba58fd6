package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/postly/postly/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Posts     *PostHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	requireAuth := middleware.Auth(deps.JWTSecret)

	auth := api.Group("/auth")
	auth.POST("/signup", deps.Auth.Signup)
	auth.POST("/signin", deps.Auth.Signin)
	auth.PATCH("/send-forgot-password-code", deps.Auth.SendForgotPasswordCode)
	auth.PATCH("/verify-forgot-password-code", deps.Auth.VerifyForgotPasswordCode)

	authSession := auth.Group("")
	authSession.Use(requireAuth)
	authSession.POST("/signout", deps.Auth.Signout)
	authSession.PATCH("/send-verification-code", deps.Auth.SendVerificationCode)
	authSession.PATCH("/verify-verification-code", deps.Auth.VerifyVerificationCode)
	authSession.PATCH("/change-password", deps.Auth.ChangePassword)

	posts := api.Group("/posts")
	posts.GET("/all-posts", deps.Posts.List)
	posts.GET("/single-post", deps.Posts.GetOne)

	postSession := posts.Group("")
	postSession.Use(requireAuth)
	postSession.POST("/create-post", deps.Posts.Create)
	postSession.PUT("/update-post", deps.Posts.Update)
	postSession.DELETE("/delete-post", deps.Posts.Delete)
}
