package models

import "time"

type Trend string

const (
	TrendIncreasing Trend = "INCREASING"
	TrendDecreasing Trend = "DECREASING"
	TrendStable     Trend = "STABLE"
)

type PredictionDataPoint struct {
	Timestamp          time.Time `json:"timestamp"`
	PredictedOccupancy float64   `json:"predicted_occupancy"`
	PredictedAvailable int       `json:"predicted_available"`
	Confidence         float64   `json:"confidence"`
	Trend              Trend     `json:"trend"`
}

type PredictionFactors struct {
	DayOfWeek     string   `json:"day_of_week"`
	TimeOfDay     string   `json:"time_of_day"`
	SpecialEvents []string `json:"special_events"`
	Weather       string   `json:"weather"`
}

type OccupancyPrediction struct {
	LotID            string                `json:"lot_id"`
	CurrentOccupancy float64               `json:"current_occupancy"`
	CurrentAvailable int                   `json:"current_available"`
	Predictions      []PredictionDataPoint `json:"predictions"`
	Confidence       float64               `json:"confidence"`
	GeneratedAt      time.Time             `json:"generated_at"`
	Factors          PredictionFactors     `json:"factors"`
	Recommendation   string                `json:"recommendation"`
}
