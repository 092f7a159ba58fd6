package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/postly/postly/internal/middleware"
	appErr "github.com/postly/postly/internal/pkg/errors"
	"github.com/postly/postly/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func getVerified(c *gin.Context) bool {
	value, _ := c.Get(middleware.ContextVerifiedKey)
	verified, _ := value.(bool)
	return verified
}

// handleError maps service errors to terminating responses. Anything outside
// the known taxonomy is logged and answered with a generic 500; no request is
// ever left without a reply.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == appErr.ErrNotFound:
		response.Error(c, http.StatusNotFound, "not found")
	case err == appErr.ErrConflict:
		response.Error(c, http.StatusConflict, "account already exists")
	case err == appErr.ErrInvalidCredentials:
		response.Error(c, http.StatusUnauthorized, "invalid credentials")
	case err == appErr.ErrNotVerified:
		response.Error(c, http.StatusUnauthorized, "account not verified")
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "unauthorized")
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, "forbidden")
	case err == appErr.ErrAlreadyVerified:
		response.Error(c, http.StatusBadRequest, "account already verified")
	case err == appErr.ErrNoPendingCode:
		response.Error(c, http.StatusBadRequest, "no pending code")
	case err == appErr.ErrCodeExpired:
		response.Error(c, http.StatusBadRequest, "code expired")
	case err == appErr.ErrCodeMismatch:
		response.Error(c, http.StatusBadRequest, "code mismatch")
	case err == appErr.ErrDeliveryFailed:
		response.Error(c, http.StatusBadRequest, "code delivery failed")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "invalid request")
	default:
		requestID, _ := c.Get("request_id")
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}
