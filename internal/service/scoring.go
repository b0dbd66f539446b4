package service

import "github.com/farmkart/farmkart-api/internal/config"

// Normalization constants for bid scoring. Both are placeholders carried
// over until real market pricing and geocoding land: the price ceiling is
// not derived from any product data, and the distance factor is a fixed
// stand-in for a route lookup.
const (
	scoreMaxPrice       = 1000.0
	scoreDistanceFactor = 0.8
	maxFarmerRating     = 5.0
)

// ScoreBid ranks a bid for display. Lower price, shorter (assumed)
// distance and higher farmer rating all push the score up. Deterministic:
// identical inputs always produce the identical score.
func ScoreBid(weights config.BiddingConfig, pricePerUnit, farmerRating float64) float64 {
	priceFactor := 1 - pricePerUnit/scoreMaxPrice
	if priceFactor < 0 {
		priceFactor = 0
	}

	ratingFactor := farmerRating / maxFarmerRating

	return weights.PriceWeight*priceFactor +
		weights.DistanceWeight*scoreDistanceFactor +
		weights.RatingWeight*ratingFactor
}
