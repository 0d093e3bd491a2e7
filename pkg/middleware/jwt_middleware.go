package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"facturo/internal/models/db_models"
	"facturo/pkg/i18n"
	mem "facturo/pkg/memcache"
	"facturo/pkg/utils"
)

// Keys set on the gin context by JWTAuthMiddleware.
const (
	CtxAccountID = "account_id"
	CtxIsAdmin   = "is_admin"
	CtxClaims    = "claims"
)

// AccountFinder reloads the caller on each request: a deleted account loses
// access and the admin flag is the stored one, not the one in the token.
type AccountFinder interface {
	FindById(ctx context.Context, id uint) (*db_models.Account, error)
}

func JWTAuthMiddleware(tokens *utils.TokenManager, revoked mem.RevocationStore, accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, http.StatusUnauthorized, i18n.KeyUnauthenticated)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, i18n.KeyTokenInvalid)
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			zap.L().Error("revocation lookup failed", zap.Error(err), zap.String("trace_id", c.GetString(CtxTraceID)))
			utils.AbortWithError(c, http.StatusInternalServerError, i18n.KeyInternal)
			return
		}
		if isRevoked {
			utils.AbortWithError(c, http.StatusUnauthorized, i18n.KeyTokenInvalid)
			return
		}

		account, err := accounts.FindById(c.Request.Context(), claims.AccountID)
		if err != nil {
			zap.L().Error("account lookup failed", zap.Error(err), zap.String("trace_id", c.GetString(CtxTraceID)))
			utils.AbortWithError(c, http.StatusInternalServerError, i18n.KeyInternal)
			return
		}
		if account == nil {
			utils.AbortWithError(c, http.StatusUnauthorized, i18n.KeyTokenInvalid)
			return
		}

		c.Set(CtxAccountID, account.ID)
		c.Set(CtxIsAdmin, account.IsAdmin)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			utils.AbortWithError(c, http.StatusForbidden, i18n.KeyForbidden)
			return
		}
		c.Next()
	}
}

// ScopeFrom returns the caller set by JWTAuthMiddleware.
func ScopeFrom(c *gin.Context) utils.Scope {
	return utils.Scope{
		AccountID: c.GetUint(CtxAccountID),
		Admin:     c.GetBool(CtxIsAdmin),
	}
}

func ClaimsFrom(c *gin.Context) *utils.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
