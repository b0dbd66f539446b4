package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceTrend(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		previous      float64
		wantDirection string
		wantPct       float64
	}{
		{name: "rising", current: 110, previous: 100, wantDirection: "up", wantPct: 10},
		{name: "falling", current: 90, previous: 100, wantDirection: "down", wantPct: -10},
		{name: "unchanged", current: 100, previous: 100, wantDirection: "flat", wantPct: 0},
		{name: "no history", current: 50, previous: 0, wantDirection: "flat", wantPct: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := priceTrend(tt.current, tt.previous)
			assert.Equal(t, tt.wantDirection, trend.Direction)
			assert.InDelta(t, tt.wantPct, trend.Percentage, 1e-9)
		})
	}
}
