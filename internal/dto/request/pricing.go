package request

type QuoteRequest struct {
	SiteID   string `json:"site_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"required,min=1"`
}
