package request

type CreateReservationRequest struct {
	SiteID   string `json:"site_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"required,min=1"`
	// ExpectedAmount is the client's own estimate; the server price is authoritative.
	ExpectedAmount *int64 `json:"expected_amount,omitempty" validate:"omitempty,gte=0"`

	// IdempotencyKey comes from the Idempotency-Key header.
	IdempotencyKey string `json:"-" validate:"max=128"`
}

type ConfirmPaymentRequest struct {
	PaidAmount *int64 `json:"paid_amount" validate:"required,gte=0"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}
