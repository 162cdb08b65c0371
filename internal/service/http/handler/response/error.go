package response

import "github.com/gin-gonic/gin"

var (
	// InvalidCredentials deliberately does not say which field was wrong.
	InvalidCredentials = gin.H{"success": false, "error": "invalid credentials"}

	SessionRequired = gin.H{"error": "session token missing or expired"}

	CredentialsMissing = gin.H{"error": "vectorizer API credentials are not configured"}
)

func Error(message string) gin.H {
	return gin.H{"error": message}
}
