package entity

import "time"

type DailyRate struct {
	Date      time.Time `json:"date"`
	DailyRate int64     `json:"daily_rate"`
	IsWeekend bool      `json:"is_weekend"`
}

type AppliedDiscount struct {
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
	Amount      int64  `json:"amount"`
}

// PriceBreakdown is the authoritative charge for a stay. It is never modified after
// it is computed: TotalAmount = Subtotal - TotalDiscount and
// Subtotal = sum(DailyBreakdown.DailyRate) + ExtraGuestFee.
type PriceBreakdown struct {
	DailyBreakdown   []DailyRate       `json:"daily_breakdown"`
	ExtraGuestFee    int64             `json:"extra_guest_fee"`
	Subtotal         int64             `json:"subtotal"`
	AppliedDiscounts []AppliedDiscount `json:"applied_discounts"`
	TotalDiscount    int64             `json:"total_discount"`
	TotalAmount      int64             `json:"total_amount"`
}

// NightlyTotal sums the per-night rates.
func (b *PriceBreakdown) NightlyTotal() int64 {
	var sum int64
	for _, d := range b.DailyBreakdown {
		sum += d.DailyRate
	}
	return sum
}
