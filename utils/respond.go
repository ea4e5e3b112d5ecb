// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the uniform error envelope. Errors are converted to
// user-facing strings here, at the boundary nearest the UI; no structured
// error codes cross it.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
