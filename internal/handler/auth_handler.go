package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postly/postly/internal/pkg/response"
	"github.com/postly/postly/internal/service"
)

const authCookieName = "Authorization"

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email,min=6,max=60"`
	Password string `json:"password" binding:"required,min=8"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email,min=6,max=60"`
}

type verifyCodeRequest struct {
	Email        string `json:"email" binding:"required,email,min=6,max=60"`
	ProvidedCode string `json:"providedCode" binding:"required,numeric"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required,min=8"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type resetPasswordRequest struct {
	Email        string `json:"email" binding:"required,email,min=6,max=60"`
	ProvidedCode string `json:"providedCode" binding:"required,numeric"`
	NewPassword  string `json:"newPassword" binding:"required,min=8"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	view, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWith(c, http.StatusCreated, "your account has been created successfully", "result", view)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	token, err := h.auth.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	maxAge := int(h.auth.TokenTTL().Seconds())
	c.SetCookie(authCookieName, "Bearer "+token, maxAge, "/", "", false, true)
	response.SuccessWith(c, http.StatusOK, "you have been logged in successfully", "token", token)
}

// Signout is stateless: it only tells the client to drop the session token.
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, "you have been logged out successfully")
}

func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.auth.SendVerificationCode(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "code sent")
}

func (h *AuthHandler) VerifyVerificationCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.auth.VerifyVerificationCode(c.Request.Context(), req.Email, req.ProvidedCode); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "account verified successfully")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), getUserID(c), getVerified(c), req.OldPassword, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "password changed successfully")
}

func (h *AuthHandler) SendForgotPasswordCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.auth.SendForgotPasswordCode(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "code sent")
}

func (h *AuthHandler) VerifyForgotPasswordCode(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.auth.VerifyForgotPasswordCode(c.Request.Context(), req.Email, req.ProvidedCode, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "password reset successfully")
}
