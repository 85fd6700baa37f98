package wire

import (
	"campground-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	// POST /api/pricing/quote - price a stay, no reservation is created
	r.Post("/api/pricing/quote", pricingHandler.Quote)
}
