package adaptor

import (
	"net/http"

	"campground-booking/internal/usecase"
	"campground-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// SiteReservedDates handles GET /api/sites/{id}/reserved-dates
func (h *AvailabilityHandler) SiteReservedDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.SiteReservedDates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get site reserved dates")
		return
	}

	utils.ResponseSuccess(w, "success", dates)
}

// CampgroundReservedDates handles GET /api/campgrounds/{id}/reserved-dates
func (h *AvailabilityHandler) CampgroundReservedDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.CampgroundReservedDates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get campground reserved dates")
		return
	}

	utils.ResponseSuccess(w, "success", dates)
}
