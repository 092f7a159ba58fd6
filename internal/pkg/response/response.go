// Package response renders the API envelope. Every reply carries
// {"success": bool, "message": string} plus at most one payload key.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

// SuccessWith adds a single payload entry (data/result/token) to the envelope.
func SuccessWith(c *gin.Context, status int, message, key string, value interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, key: value})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
