package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fon-raspored/raspored-api/internal/middleware"
	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/response"
)

// requireClaims writes a 401 and returns false when the request carries no claims.
func requireClaims(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}
