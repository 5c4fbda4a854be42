package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/auth"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type OwnerHandler struct {
	service hotels.OwnerUseCase
}

func NewOwnerHandler(service hotels.OwnerUseCase) *OwnerHandler {
	return &OwnerHandler{service: service}
}

func (h *OwnerHandler) Register(router *gin.RouterGroup) {
	router.Use(requireRole(domain.RoleHotelOwner))
	router.GET("/hotels", h.listHotels)
	router.GET("/stats", h.stats)
	router.DELETE("/hotels/:id", h.deleteHotel)
}

func (h *OwnerHandler) listHotels(c *gin.Context) {
	list, err := h.service.ListHotels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OwnerHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *OwnerHandler) deleteHotel(c *gin.Context) {
	if err := h.service.DeleteHotel(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireRole rejects callers without a verified identity carrying role.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.FromContext(c.Request.Context())
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": hotels.ErrNotOwner.Error()})
			return
		}
		c.Next()
	}
}
