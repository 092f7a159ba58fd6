package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/postly/postly/internal/pkg/response"
	"github.com/postly/postly/internal/service"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"required"`
}

func (h *PostHandler) List(c *gin.Context) {
	page := 1
	if value := c.Query("page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			page = parsed
		}
	}
	posts, err := h.posts.List(c.Request.Context(), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "posts", "data", posts)
}

func (h *PostHandler) GetOne(c *gin.Context) {
	postID := c.Query("_id")
	if postID == "" {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "single post", "data", post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := h.posts.Create(c.Request.Context(), getUserID(c), req.Title, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWith(c, http.StatusCreated, "post created", "data", post)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID := c.Query("_id")
	if postID == "" {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := h.posts.Update(c.Request.Context(), getUserID(c), postID, req.Title, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "post updated", "data", post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID := c.Query("_id")
	if postID == "" {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.posts.Delete(c.Request.Context(), getUserID(c), postID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post deleted")
}
