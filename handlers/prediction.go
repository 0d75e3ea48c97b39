package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"smart-parking-api/models"
	"smart-parking-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MinHorizonHours     = 1
	MaxHorizonHours     = 12
	DefaultHorizonHours = 3
)

var (
	predictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parking_predictions_generated_total",
		Help: "Total number of occupancy forecasts computed.",
	})
	predictionsCached = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parking_predictions_cache_hits_total",
		Help: "Total number of forecasts served from the memoization cache.",
	})
)

type PredictionHandler struct {
	lots   LotServiceInterface
	engine *services.PredictionEngine
	cache  CacheServiceInterface
}

func NewPredictionHandler(lots LotServiceInterface, engine *services.PredictionEngine, cache CacheServiceInterface) *PredictionHandler {
	return &PredictionHandler{lots: lots, engine: engine, cache: cache}
}

// GetPrediction validates the horizon before the engine runs; the engine
// assumes a pre-validated integer.
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	lotID := c.Param("lotId")

	hoursStr := c.DefaultQuery("hours", strconv.Itoa(DefaultHorizonHours))
	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours < MinHorizonHours || hours > MaxHorizonHours {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours parameter, must be an integer between 1 and 12"})
		return
	}

	cacheKey := services.PredictionKey(lotID, hours)

	var cached models.OccupancyPrediction
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.LotID != "" {
		predictionsCached.Inc()
		c.JSON(http.StatusOK, Envelope{Success: true, Data: cached})
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

	prediction := h.engine.Predict(view, hours)
	predictionsGenerated.Inc()

	go h.cache.Set(context.Background(), cacheKey, prediction, services.PredictionTTL)

	c.JSON(http.StatusOK, Envelope{Success: true, Data: prediction})
}
