package services

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"smart-parking-api/models"
)

func newTestEngine(seed int64, now time.Time) *PredictionEngine {
	e := NewPredictionEngine(rand.New(rand.NewSource(seed)))
	e.now = func() time.Time { return now }
	return e
}

// Monday 8 AM local; the first three future hours fall in the morning band.
var mondayMorning = time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

func testLot(rate float64, available, total int) models.LotOccupancy {
	return models.LotOccupancy{
		LotID:           "lot-1",
		Name:            "Lot 1",
		TotalSpaces:     total,
		AvailableSpaces: available,
		OccupancyRate:   rate,
	}
}

func TestPredictSeriesLength(t *testing.T) {
	lot := testLot(50, 50, 100)
	for h := 1; h <= 12; h++ {
		p := newTestEngine(1, mondayMorning).Predict(lot, h)
		if len(p.Predictions) != h {
			t.Errorf("horizon %d: got %d points", h, len(p.Predictions))
		}
	}
}

func TestPredictConfidenceDecay(t *testing.T) {
	p := newTestEngine(1, mondayMorning).Predict(testLot(50, 50, 100), 12)

	for i, pt := range p.Predictions {
		want := 0.85 - 0.05*float64(i+1)
		if math.Abs(pt.Confidence-want) > 1e-9 {
			t.Errorf("point %d: confidence = %v, want %v", i, pt.Confidence, want)
		}
	}
	for i := 1; i < len(p.Predictions); i++ {
		if p.Predictions[i].Confidence >= p.Predictions[i-1].Confidence {
			t.Errorf("confidence not strictly decreasing at point %d", i)
		}
	}
}

func TestPredictTrendConsistency(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		p := newTestEngine(seed, mondayMorning).Predict(testLot(50, 50, 100), 12)

		if p.Predictions[0].Trend != models.TrendStable {
			t.Errorf("seed %d: first point trend = %s, want STABLE", seed, p.Predictions[0].Trend)
		}
		for i := 1; i < len(p.Predictions); i++ {
			delta := p.Predictions[i].PredictedOccupancy - p.Predictions[i-1].PredictedOccupancy
			want := models.TrendStable
			if delta > 3 {
				want = models.TrendIncreasing
			} else if delta < -3 {
				want = models.TrendDecreasing
			}
			if p.Predictions[i].Trend != want {
				t.Errorf("seed %d point %d: trend = %s, want %s (delta %v)",
					seed, i, p.Predictions[i].Trend, want, delta)
			}
		}
	}
}

func TestPredictBounds(t *testing.T) {
	lot := testLot(90, 5, 100)
	for seed := int64(0); seed < 10; seed++ {
		p := newTestEngine(seed, mondayMorning).Predict(lot, 12)
		for i, pt := range p.Predictions {
			if pt.PredictedOccupancy < 0 || pt.PredictedOccupancy > 100 {
				t.Errorf("seed %d point %d: occupancy %v out of [0,100]", seed, i, pt.PredictedOccupancy)
			}
			if pt.PredictedAvailable < 0 || pt.PredictedAvailable > lot.TotalSpaces {
				t.Errorf("seed %d point %d: available %d out of [0,%d]", seed, i, pt.PredictedAvailable, lot.TotalSpaces)
			}
		}
	}
}

func TestPredictTimeOfDayBias(t *testing.T) {
	lot := testLot(50, 50, 100)

	// 14-16 band: 50+20 with jitter in [-5,+5]
	afternoon := time.Date(2025, 3, 10, 13, 0, 0, 0, time.Local)
	p := newTestEngine(3, afternoon).Predict(lot, 3)
	for i, pt := range p.Predictions {
		if pt.PredictedOccupancy < 65 || pt.PredictedOccupancy > 75 {
			t.Errorf("afternoon point %d: occupancy %v outside [65,75]", i, pt.PredictedOccupancy)
		}
	}

	// 17-19 band: 50-15 with jitter
	evening := time.Date(2025, 3, 10, 16, 0, 0, 0, time.Local)
	p = newTestEngine(3, evening).Predict(lot, 3)
	for i, pt := range p.Predictions {
		if pt.PredictedOccupancy < 30 || pt.PredictedOccupancy > 40 {
			t.Errorf("evening point %d: occupancy %v outside [30,40]", i, pt.PredictedOccupancy)
		}
	}

	// no band: jitter only
	night := time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)
	p = newTestEngine(3, night).Predict(lot, 3)
	for i, pt := range p.Predictions {
		if pt.PredictedOccupancy < 45 || pt.PredictedOccupancy > 55 {
			t.Errorf("night point %d: occupancy %v outside [45,55]", i, pt.PredictedOccupancy)
		}
	}
}

func TestPredictEveningFloor(t *testing.T) {
	// 25-15 would be 10; the band floors at 20 before jitter
	evening := time.Date(2025, 3, 10, 16, 0, 0, 0, time.Local)
	p := newTestEngine(7, evening).Predict(testLot(25, 75, 100), 3)
	for i, pt := range p.Predictions {
		if pt.PredictedOccupancy < 15 || pt.PredictedOccupancy > 25 {
			t.Errorf("point %d: occupancy %v outside floored range [15,25]", i, pt.PredictedOccupancy)
		}
	}
}

func TestPredictHighDemandRecommendation(t *testing.T) {
	// Base 90 in the morning band caps at 95; even the worst jitter stays
	// above the 85 threshold.
	lot := testLot(90, 5, 100)
	for seed := int64(0); seed < 5; seed++ {
		p := newTestEngine(seed, mondayMorning).Predict(lot, 3)
		if !strings.HasPrefix(p.Recommendation, "High demand expected around") {
			t.Errorf("seed %d: recommendation = %q", seed, p.Recommendation)
		}
	}
}

func TestPredictGoodAvailabilityRecommendation(t *testing.T) {
	// Late evening keeps predictions near 20, well under the threshold
	night := time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)
	p := newTestEngine(2, night).Predict(testLot(20, 50, 100), 3)

	want := "Good availability expected. No concerns at this time."
	if p.Recommendation != want {
		t.Errorf("recommendation = %q, want %q", p.Recommendation, want)
	}
}

func TestPredictLimitedSpacesRecommendation(t *testing.T) {
	night := time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)
	p := newTestEngine(2, night).Predict(testLot(20, 5, 100), 3)

	want := "Limited spaces available now. Consider alternative lots if possible."
	if p.Recommendation != want {
		t.Errorf("recommendation = %q, want %q", p.Recommendation, want)
	}
}

func TestPredictFactors(t *testing.T) {
	p := newTestEngine(1, mondayMorning).Predict(testLot(50, 50, 100), 3)

	if p.Factors.DayOfWeek != "Monday" {
		t.Errorf("DayOfWeek = %q, want Monday", p.Factors.DayOfWeek)
	}
	if p.Factors.TimeOfDay != "Morning" {
		t.Errorf("TimeOfDay = %q, want Morning", p.Factors.TimeOfDay)
	}
	if p.Factors.Weather != "Clear" {
		t.Errorf("Weather = %q, want Clear", p.Factors.Weather)
	}
	if len(p.Factors.SpecialEvents) != 0 {
		t.Errorf("SpecialEvents = %v, want empty", p.Factors.SpecialEvents)
	}
}

func TestPredictCurrentFields(t *testing.T) {
	lot := testLot(37.5, 25, 40)
	p := newTestEngine(1, mondayMorning).Predict(lot, 2)

	if p.LotID != lot.LotID {
		t.Errorf("LotID = %q, want %q", p.LotID, lot.LotID)
	}
	if p.CurrentOccupancy != lot.OccupancyRate {
		t.Errorf("CurrentOccupancy = %v, want %v", p.CurrentOccupancy, lot.OccupancyRate)
	}
	if p.CurrentAvailable != lot.AvailableSpaces {
		t.Errorf("CurrentAvailable = %d, want %d", p.CurrentAvailable, lot.AvailableSpaces)
	}
	if !p.GeneratedAt.Equal(mondayMorning) {
		t.Errorf("GeneratedAt = %v, want %v", p.GeneratedAt, mondayMorning)
	}
	for i, pt := range p.Predictions {
		want := mondayMorning.Add(time.Duration(i+1) * time.Hour)
		if !pt.Timestamp.Equal(want) {
			t.Errorf("point %d: timestamp = %v, want %v", i, pt.Timestamp, want)
		}
	}
}

// One engine serves all request goroutines; the race detector flags any
// unguarded draw from the shared generator.
func TestPredictConcurrent(t *testing.T) {
	engine := newTestEngine(1, mondayMorning)
	lot := testLot(50, 50, 100)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				p := engine.Predict(lot, 12)
				if len(p.Predictions) != 12 {
					t.Errorf("got %d points, want 12", len(p.Predictions))
					return
				}
				for _, pt := range p.Predictions {
					if pt.PredictedOccupancy < 0 || pt.PredictedOccupancy > 100 {
						t.Errorf("occupancy %v out of [0,100]", pt.PredictedOccupancy)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestTimeOfDayBuckets(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "Morning"},
		{11, "Morning"},
		{12, "Afternoon"},
		{16, "Afternoon"},
		{17, "Evening"},
		{23, "Evening"},
	}
	for _, tc := range cases {
		ts := time.Date(2025, 3, 10, tc.hour, 0, 0, 0, time.Local)
		if got := timeOfDay(ts); got != tc.want {
			t.Errorf("timeOfDay(%02d:00) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}
