package middleware

import "github.com/gin-gonic/gin"

// operatorIDKey is the key used to store the acting operator's ID in the Gin
// context. Using a custom type prevents collisions.
const operatorIDKey = contextKey("operatorID")

// SetOperatorID stores the acting operator's ID on the Gin context. The API
// trusts the X-Operator-ID header; authenticating the operator is the
// surrounding platform's concern, not this service's.
func SetOperatorID(c *gin.Context, operatorID string) {
	c.Set(string(operatorIDKey), operatorID)
}

// GetOperatorIDFromContext retrieves the acting operator's ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(operatorIDKey))
	if !exists {
		return "", false
	}

	operatorID, ok := val.(string)
	if !ok || operatorID == "" {
		return "", false
	}

	return operatorID, true
}

// OperatorIDMiddleware lifts the X-Operator-ID header into the Gin context so
// audit fields can be stamped downstream.
func OperatorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if operatorID := c.GetHeader("X-Operator-ID"); operatorID != "" {
			SetOperatorID(c, operatorID)
		}
		c.Next()
	}
}
