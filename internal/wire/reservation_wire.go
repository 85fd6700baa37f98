package wire

import (
	"campground-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		// POST /api/reservations - admission; honours the Idempotency-Key header
		r.Post("/", reservationHandler.CreateReservation)

		r.Get("/{id}", reservationHandler.GetReservation)

		// POST /api/reservations/{id}/confirm - payment confirmation, amount must match exactly
		r.Post("/{id}/confirm", reservationHandler.ConfirmPayment)

		r.Post("/{id}/cancel", reservationHandler.CancelReservation)
	})
}
