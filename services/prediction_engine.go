package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"smart-parking-api/models"
)

const (
	morningPeakOffset   = 15.0
	afternoonPeakOffset = 20.0
	eveningDropOffset   = 15.0
	peakCap             = 95.0
	dropFloor           = 20.0
	varianceRange       = 5.0
	trendDeadBand       = 3.0
	baseConfidence      = 0.85
	confidenceDecay     = 0.05
	highDemandThreshold = 85.0
	lowAvailability     = 10
)

// PredictionEngine generates hourly occupancy forecasts for a lot from its
// current aggregated view. The random source is injected so tests can seed
// it; the clock is injected for the same reason. One engine serves every
// request goroutine, and rand.Rand is not safe for concurrent use, so all
// draws happen under the mutex.
type PredictionEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewPredictionEngine(rng *rand.Rand) *PredictionEngine {
	return &PredictionEngine{rng: rng, now: time.Now}
}

// Predict produces one data point per future hour, 1..horizonHours. The
// horizon must already be validated to [1,12] by the caller; the engine does
// not clamp it.
func (e *PredictionEngine) Predict(lot models.LotOccupancy, horizonHours int) models.OccupancyPrediction {
	now := e.now()

	e.mu.Lock()
	jitter := make([]float64, horizonHours)
	for i := range jitter {
		jitter[i] = e.rng.Float64()*2*varianceRange - varianceRange
	}
	e.mu.Unlock()

	points := make([]models.PredictionDataPoint, 0, horizonHours)
	var prev float64
	var confSum float64

	for i := 1; i <= horizonHours; i++ {
		ts := now.Add(time.Duration(i) * time.Hour)
		occ := lot.OccupancyRate

		switch hour := ts.Hour(); {
		case hour >= 9 && hour <= 11:
			occ = math.Min(occ+morningPeakOffset, peakCap)
		case hour >= 14 && hour <= 16:
			occ = math.Min(occ+afternoonPeakOffset, peakCap)
		case hour >= 17 && hour <= 19:
			occ = math.Max(occ-eveningDropOffset, dropFloor)
		}

		occ += jitter[i-1]
		occ = math.Max(0, math.Min(100, occ))
		occ = math.Round(occ*10) / 10

		// Confidence is not floored; the horizon cap keeps it positive.
		conf := baseConfidence - confidenceDecay*float64(i)
		confSum += conf

		trend := models.TrendStable
		if i > 1 {
			if delta := occ - prev; delta > trendDeadBand {
				trend = models.TrendIncreasing
			} else if delta < -trendDeadBand {
				trend = models.TrendDecreasing
			}
		}
		prev = occ

		points = append(points, models.PredictionDataPoint{
			Timestamp:          ts,
			PredictedOccupancy: occ,
			PredictedAvailable: int(math.Round(float64(lot.TotalSpaces) * (1 - occ/100))),
			Confidence:         conf,
			Trend:              trend,
		})
	}

	return models.OccupancyPrediction{
		LotID:            lot.LotID,
		CurrentOccupancy: lot.OccupancyRate,
		CurrentAvailable: lot.AvailableSpaces,
		Predictions:      points,
		Confidence:       math.Round(confSum/float64(horizonHours)*100) / 100,
		GeneratedAt:      now,
		Factors: models.PredictionFactors{
			DayOfWeek:     now.Weekday().String(),
			TimeOfDay:     timeOfDay(now),
			SpecialEvents: []string{},
			Weather:       "Clear",
		},
		Recommendation: recommendation(lot, points),
	}
}

// recommendation scans the series for its peak (first occurrence wins ties)
// and turns it into advice for the driver.
func recommendation(lot models.LotOccupancy, points []models.PredictionDataPoint) string {
	peak := points[0]
	for _, p := range points[1:] {
		if p.PredictedOccupancy > peak.PredictedOccupancy {
			peak = p
		}
	}

	if peak.PredictedOccupancy > highDemandThreshold {
		return fmt.Sprintf(
			"High demand expected around %s. Consider arriving earlier for better availability.",
			peak.Timestamp.Format("3:04 PM"),
		)
	}
	if lot.AvailableSpaces < lowAvailability {
		return "Limited spaces available now. Consider alternative lots if possible."
	}
	return "Good availability expected. No concerns at this time."
}

func timeOfDay(t time.Time) string {
	switch {
	case t.Hour() < 12:
		return "Morning"
	case t.Hour() < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}
