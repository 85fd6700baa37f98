package adaptor

import (
	"net/http"

	"campground-booking/internal/dto/request"
	"campground-booking/internal/usecase"
	"campground-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// Quote handles POST /api/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "quote price")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}
