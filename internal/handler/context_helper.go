package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/middleware"
	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	if claims := claimsFromContext(c); claims != nil {
		actor.ID = claims.UserID
		actor.Role = claims.Role
	}
	return actor
}

// listRequest is the body shared by every POST /{resource}/list endpoint.
type listRequest struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Search    string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}
