package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"campground-booking/pkg/apperror"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message, reason string, data, errors any) {
	response := Response{
		Status:  status,
		Message: message,
		Reason:  reason,
		Data:    data,
		Errors:  errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, "", data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, "", data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, string(apperror.CodeValidation), nil, errors)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, string(apperror.CodeNotFound), nil, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, message, "INTERNAL", nil, nil)
}

// ResponseError writes err with the HTTP status matching its apperror code.
// Errors without a code are reported as internal errors without leaking their text.
func ResponseError(w http.ResponseWriter, err error) {
	code := apperror.CodeOf(err)

	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		message := "Internal server error"
		if code == apperror.CodeConfiguration {
			message = "Pricing is misconfigured for this request"
		}
		reason := string(code)
		if reason == "" {
			reason = "INTERNAL"
		}
		ResponseJSON(w, status, false, message, reason, nil, nil)
		return
	}

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	ResponseJSON(w, status, false, message, string(code), nil, nil)
}

func StatusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeInvalidRange, apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict, apperror.CodeInvalidState:
		return http.StatusConflict
	case apperror.CodePriceMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
