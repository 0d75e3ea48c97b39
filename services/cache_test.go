package services

import "testing"

func TestPredictionKey(t *testing.T) {
	cases := []struct {
		lotID string
		hours int
		want  string
	}{
		{"lot-central", 3, "prediction:lot-central:3"},
		{"lot-east", 12, "prediction:lot-east:12"},
		{"lot-station", 1, "prediction:lot-station:1"},
	}
	for _, tc := range cases {
		if got := PredictionKey(tc.lotID, tc.hours); got != tc.want {
			t.Errorf("PredictionKey(%q, %d) = %q, want %q", tc.lotID, tc.hours, got, tc.want)
		}
	}
}
