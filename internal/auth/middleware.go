package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey es la clave del gin.Context bajo la que queda la identidad.
const ContextUserKey = "authUser"

// RequireAuth extrae el bearer token del header Authorization, lo verifica
// y deja el User resuelto en el contexto. Con verifier nil (credenciales
// ausentes) responde 503: falla de configuración del servidor, no del caller.
func RequireAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "Auth is not configured"})
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFromContext recupera la identidad dejada por RequireAuth.
func UserFromContext(c *gin.Context) (*User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok
}
