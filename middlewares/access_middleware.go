package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/config"
	"github.com/yeremiapane/kitchenlog/utils"
)

// AccessMiddleware requires a token from POST /access when a passphrase is
// configured, and lets everything through otherwise. Download links may pass
// the token as ?token= since browsers cannot set headers on them.
func AccessMiddleware(access config.AccessConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Enabled() {
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("access token missing"))
			c.Abort()
			return
		}

		if _, err := utils.ParseAccessToken(access.TokenSecret, token); err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
