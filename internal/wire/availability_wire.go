package wire

import (
	"campground-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	r.Get("/api/sites/{id}/reserved-dates", availabilityHandler.SiteReservedDates)
	r.Get("/api/campgrounds/{id}/reserved-dates", availabilityHandler.CampgroundReservedDates)
}
