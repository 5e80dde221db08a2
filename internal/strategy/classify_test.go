package strategy

import (
	"testing"

	"VolRadar/internal/model"
)

func TestClassify_DecisionTable(t *testing.T) {
	tests := []struct {
		daily    float64
		weekly   float64
		label    model.SignalLabel
		conflict bool
	}{
		{65, 50, model.SignalConflict, true},
		{50, 65, model.SignalConflict, true},
		{70, 75, model.SignalBuy, false},
		{30, 25, model.SignalSell, false},
		{50, 50, model.SignalNeutral, false},
		// Strong disagreement falls through to the Neutral fallback.
		{75, 30, model.SignalNeutral, false},
		{30, 75, model.SignalNeutral, false},
		// Band boundaries: 60 is inside the neutral band, not above it.
		{60, 60, model.SignalNeutral, false},
		{40, 40, model.SignalNeutral, false},
		{60.01, 50, model.SignalConflict, true},
		{39.99, 39.99, model.SignalSell, false},
	}
	for _, tt := range tests {
		sig := Classify(tt.daily, tt.weekly)
		if sig.Label != tt.label {
			t.Errorf("Classify(%.2f, %.2f): expected %q, got %q", tt.daily, tt.weekly, tt.label, sig.Label)
		}
		if sig.Conflict != tt.conflict {
			t.Errorf("Classify(%.2f, %.2f): expected conflict=%v, got %v", tt.daily, tt.weekly, tt.conflict, sig.Conflict)
		}
	}
}

func TestClassify_Palette(t *testing.T) {
	tests := []struct {
		daily  float64
		weekly float64
		color  string
	}{
		{70, 75, model.ColorGreen},
		{30, 25, model.ColorRed},
		{50, 50, model.ColorYellow},
		{65, 50, model.ColorGray},
	}
	for _, tt := range tests {
		sig := Classify(tt.daily, tt.weekly)
		if sig.Color != tt.color {
			t.Errorf("Classify(%.2f, %.2f): expected color %q, got %q", tt.daily, tt.weekly, tt.color, sig.Color)
		}
		if sig.Weight == 0 {
			t.Errorf("Classify(%.2f, %.2f): expected a display weight", tt.daily, tt.weekly)
		}
	}
}
