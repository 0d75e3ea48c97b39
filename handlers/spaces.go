package handlers

import (
	"errors"
	"net/http"
	"time"

	"smart-parking-api/services"

	"github.com/gin-gonic/gin"
)

type SpacesHandler struct {
	lots LotServiceInterface
}

func NewSpacesHandler(lots LotServiceInterface) *SpacesHandler {
	return &SpacesHandler{lots: lots}
}

func (h *SpacesHandler) GetSpaces(c *gin.Context) {
	lotID := c.Param("lotId")
	p := ParsePagination(c)

	if _, err := h.lots.Lot(lotID); err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store query failed"})
		return
	}

	filter := services.SpaceFilter{
		Status: c.Query("status"),
		Zone:   c.Query("zone"),
		Limit:  p.Limit + 1,
		Before: p.Before,
	}

	rows, err := h.lots.Spaces(lotID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].LastUpdate.Format(time.RFC3339Nano)
	}

	c.JSON(http.StatusOK, CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore})
}
