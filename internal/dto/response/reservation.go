package response

import (
	"time"

	"campground-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID           string                   `json:"id"`
	Code         string                   `json:"code"`
	SiteID       string                   `json:"site_id"`
	CampgroundID string                   `json:"campground_id"`
	CheckIn      string                   `json:"check_in"`
	CheckOut     string                   `json:"check_out"`
	Nights       int                      `json:"nights"`
	Guests       int                      `json:"guests"`
	Status       entity.ReservationStatus `json:"status"`
	TotalAmount  int64                    `json:"total_amount"`
	Breakdown    *PriceBreakdownResponse  `json:"breakdown,omitempty"`
	CancelReason *string                  `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

type AdmissionResponse struct {
	Outcome     entity.AdmissionOutcome `json:"outcome"`
	Replayed    bool                    `json:"replayed"`
	Reservation ReservationResponse     `json:"reservation"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:           r.ID.String(),
		Code:         r.Code,
		SiteID:       r.SiteID.String(),
		CampgroundID: r.CampgroundID.String(),
		CheckIn:      r.Stay.Start.Format(entity.DateLayout),
		CheckOut:     r.Stay.End.Format(entity.DateLayout),
		Nights:       r.Stay.NightCount(),
		Guests:       r.GuestCount,
		Status:       r.Status,
		TotalAmount:  r.TotalAmount,
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Breakdown != nil {
		b := PriceBreakdownToResponse(r.Breakdown)
		resp.Breakdown = &b
	}
	return resp
}
