package adaptor

import (
	"net/http"

	"campground-booking/internal/dto/request"
	"campground-booking/internal/usecase"
	"campground-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	service usecase.AdmissionService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.AdmissionService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.IdempotencyKey = r.Header.Get(idempotencyHeader)

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	admission, err := h.service.Admit(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create reservation")
		return
	}

	if admission.Replayed {
		utils.ResponseSuccess(w, "success", admission)
		return
	}
	utils.ResponseCreated(w, "success", admission)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ConfirmPayment handles POST /api/reservations/{id}/confirm
func (h *ReservationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmPaymentRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.ConfirmPayment(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelReservation handles POST /api/reservations/{id}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CancelReservationRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}
