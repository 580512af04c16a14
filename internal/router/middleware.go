package router

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// ArchiveAuth guards the archive export behind the shared bearer secret.
// The comparison is constant-time exact equality; there is no session or
// per-user identity. An empty configured token rejects every request
// rather than matching an empty credential.
func ArchiveAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.Conf.Archive.Token

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" || secret == "" || !hmac.Equal([]byte(token), []byte(secret)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}

		c.Next()
	}
}
