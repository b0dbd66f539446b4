package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmkart/farmkart-api/internal/config"
)

var defaultWeights = config.BiddingConfig{
	PriceWeight:    0.5,
	DistanceWeight: 0.3,
	RatingWeight:   0.2,
}

func TestScoreBid(t *testing.T) {
	tests := []struct {
		name         string
		pricePerUnit float64
		rating       float64
		want         float64
	}{
		{
			name:         "mid price with default rating",
			pricePerUnit: 500,
			rating:       3.5,
			want:         0.5*0.5 + 0.3*0.8 + 0.2*0.7,
		},
		{
			name:         "cheap bid with top rating",
			pricePerUnit: 100,
			rating:       5,
			want:         0.5*0.9 + 0.3*0.8 + 0.2*1.0,
		},
		{
			name:         "price above the normalization cap floors the price term",
			pricePerUnit: 2500,
			rating:       4,
			want:         0.3*0.8 + 0.2*0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreBid(defaultWeights, tt.pricePerUnit, tt.rating)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreBidIsDeterministic(t *testing.T) {
	first := ScoreBid(defaultWeights, 321.5, 4.2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreBid(defaultWeights, 321.5, 4.2))
	}
}

func TestScoreBidLowerPriceScoresHigher(t *testing.T) {
	cheap := ScoreBid(defaultWeights, 200, 4)
	expensive := ScoreBid(defaultWeights, 800, 4)
	assert.Greater(t, cheap, expensive)
}
