package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"campground-booking/internal/usecase"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Pricing      *PricingHandler
	Availability *AvailabilityHandler
	Reservation  *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Pricing:      NewPricingHandler(service.Pricing, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Reservation:  NewReservationHandler(service.Admission, log),
	}
}

// decodeBody decodes a JSON body into dst. An empty body is allowed when optional is set.
func decodeBody(r *http.Request, dst any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// handleServiceError logs err at a level matching its kind and writes the error response.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	code := apperror.CodeOf(err)

	switch code {
	case apperror.CodeValidation, apperror.CodeInvalidRange, apperror.CodeNotFound,
		apperror.CodeConflict, apperror.CodeInvalidState:
		log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("reason", string(code)))
	case apperror.CodePriceMismatch, apperror.CodeConfiguration:
		// Already reported on the integrity logger by the service.
		log.Warn(operation+" rejected for integrity",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("reason", string(code)))
	default:
		log.Error(operation+" failed - internal error",
			zap.Error(err),
			zap.String("operation", operation))
	}

	utils.ResponseError(w, err)
}
