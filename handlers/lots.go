package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"smart-parking-api/models"
	"smart-parking-api/services"

	"github.com/gin-gonic/gin"
)

const lotCacheTTL = 10 * time.Second

type LotsHandler struct {
	lots  LotServiceInterface
	cache CacheServiceInterface
}

func NewLotsHandler(lots LotServiceInterface, cache CacheServiceInterface) *LotsHandler {
	return &LotsHandler{lots: lots, cache: cache}
}

func (h *LotsHandler) GetLots(c *gin.Context) {
	const cacheKey = "lots:all"

	var cached Envelope
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	lots, err := h.lots.Lots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store query failed"})
		return
	}

	views := make([]models.LotOccupancy, 0, len(lots))
	for _, lot := range lots {
		view, err := h.lots.Occupancy(lot.LotID)
		if errors.Is(err, services.ErrLotNotFound) {
			// The lot vanished between the listing and aggregation, e.g.
			// when the breaker tripped mid-loop; drop it from the page
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store query failed"})
			return
		}
		views = append(views, view)
	}

	resp := Envelope{Success: true, Data: views}
	go h.cache.Set(context.Background(), cacheKey, resp, lotCacheTTL)

	c.JSON(http.StatusOK, resp)
}

func (h *LotsHandler) GetLot(c *gin.Context) {
	lotID := c.Param("lotId")
	cacheKey := fmt.Sprintf("lot:%s", lotID)

	var cached Envelope
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	view, err := h.lots.Occupancy(lotID)
	if errors.Is(err, services.ErrLotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store query failed"})
		return
	}

	resp := Envelope{Success: true, Data: view}
	go h.cache.Set(context.Background(), cacheKey, resp, lotCacheTTL)

	c.JSON(http.StatusOK, resp)
}
