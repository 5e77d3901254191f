package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"halalshop-backend/internal/auth"
	"halalshop-backend/internal/dto"
)

// SecretHeader carries the shared secret on every request.
const SecretHeader = "secret"

// AccessGate enforces the static shared-secret scheme: the "secret"
// header and the User-Agent value must both match their configured
// counterparts. A mismatch bans the caller's address on the deny-list;
// a banned address is refused before credentials are looked at, so a
// ban outranks valid credentials.
func AccessGate(secret, clientName string, denyList auth.DenyList, skip []string, log *zap.Logger) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipSet[path] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := skipSet[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		addr := c.ClientIP()
		banned, err := denyList.Contains(c.Request.Context(), addr)
		if err != nil {
			log.Error("deny-list lookup failed", zap.Error(err), zap.String("address", addr))
		}
		if banned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Forbidden",
				"address": addr,
			})
			return
		}
		if c.GetHeader(SecretHeader) != secret || c.GetHeader("User-Agent") != clientName {
			if err := denyList.Add(c.Request.Context(), addr); err != nil {
				log.Error("deny-list add failed", zap.Error(err), zap.String("address", addr))
			}
			log.Warn("authentication failed", zap.String("address", addr))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Msg("Unauthorized"))
			return
		}
		c.Next()
	}
}
