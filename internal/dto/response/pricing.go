package response

import (
	"campground-booking/internal/data/entity"
)

type DailyRateResponse struct {
	Date      string `json:"date"`
	DailyRate int64  `json:"daily_rate"`
	IsWeekend bool   `json:"is_weekend"`
}

type AppliedDiscountResponse struct {
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
	Amount      int64  `json:"amount"`
}

type PriceBreakdownResponse struct {
	DailyBreakdown   []DailyRateResponse       `json:"daily_breakdown"`
	ExtraGuestFee    int64                     `json:"extra_guest_fee"`
	Subtotal         int64                     `json:"subtotal"`
	AppliedDiscounts []AppliedDiscountResponse `json:"applied_discounts"`
	TotalDiscount    int64                     `json:"total_discount"`
	TotalAmount      int64                     `json:"total_amount"`
}

type QuoteResponse struct {
	SiteID    string                 `json:"site_id"`
	CheckIn   string                 `json:"check_in"`
	CheckOut  string                 `json:"check_out"`
	Nights    int                    `json:"nights"`
	Guests    int                    `json:"guests"`
	Breakdown PriceBreakdownResponse `json:"breakdown"`
}

func PriceBreakdownToResponse(b *entity.PriceBreakdown) PriceBreakdownResponse {
	resp := PriceBreakdownResponse{
		DailyBreakdown:   make([]DailyRateResponse, 0, len(b.DailyBreakdown)),
		ExtraGuestFee:    b.ExtraGuestFee,
		Subtotal:         b.Subtotal,
		AppliedDiscounts: make([]AppliedDiscountResponse, 0, len(b.AppliedDiscounts)),
		TotalDiscount:    b.TotalDiscount,
		TotalAmount:      b.TotalAmount,
	}
	for _, d := range b.DailyBreakdown {
		resp.DailyBreakdown = append(resp.DailyBreakdown, DailyRateResponse{
			Date:      d.Date.Format(entity.DateLayout),
			DailyRate: d.DailyRate,
			IsWeekend: d.IsWeekend,
		})
	}
	for _, d := range b.AppliedDiscounts {
		resp.AppliedDiscounts = append(resp.AppliedDiscounts, AppliedDiscountResponse{
			Description: d.Description,
			Percentage:  d.Percentage,
			Amount:      d.Amount,
		})
	}
	return resp
}
