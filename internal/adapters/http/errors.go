package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// routeNotFound answers unmatched paths with the JSON error envelope.
func routeNotFound(c *gin.Context) {
	_, resp := dto.FromDomainError(domain.NewNotFoundError("route", c.Request.URL.Path))
	c.AbortWithStatusJSON(resp.Status(), resp.WithTraceID(dto.GetTraceID(c)))
}
