package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	service hotels.HotelUseCase
}

func NewHotelHandler(service hotels.HotelUseCase) *HotelHandler {
	return &HotelHandler{service: service}
}

func (h *HotelHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

// list accepts repeated or comma separated values for stars, room_types and amenities.
func (h *HotelHandler) list(c *gin.Context) {
	filter := hotels.Filter{
		Query:     c.Query("q"),
		RoomTypes: splitList(c.QueryArray("room_types")),
		Amenities: splitList(c.QueryArray("amenities")),
		Sort:      hotels.SortOption(c.Query("sort")),
	}

	var err error
	if filter.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
		return
	}
	if filter.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
		return
	}
	if filter.Page, err = queryInt(c, "page"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	if filter.PageSize, err = queryInt(c, "page_size"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}
	for _, s := range splitList(c.QueryArray("stars")) {
		star, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stars"})
			return
		}
		filter.StarRating = append(filter.StarRating, star)
	}
	switch filter.Sort {
	case hotels.SortRecommended, hotels.SortPriceAsc, hotels.SortPriceDesc, hotels.SortRating:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort"})
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *HotelHandler) get(c *gin.Context) {
	hotel, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
