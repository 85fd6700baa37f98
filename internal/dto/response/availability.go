package response

import (
	"campground-booking/internal/data/entity"

	"github.com/google/uuid"
)

type ReservedRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// ReservedDatesResponse maps site ID to its occupied stays.
type ReservedDatesResponse struct {
	ReservedDates map[string][]ReservedRangeResponse `json:"reserved_dates"`
}

func ReservedDatesToResponse(ranges map[uuid.UUID][]entity.DateRange) ReservedDatesResponse {
	resp := ReservedDatesResponse{ReservedDates: make(map[string][]ReservedRangeResponse, len(ranges))}
	for siteID, stays := range ranges {
		out := make([]ReservedRangeResponse, 0, len(stays))
		for _, stay := range stays {
			out = append(out, ReservedRangeResponse{
				CheckIn:  stay.Start.Format(entity.DateLayout),
				CheckOut: stay.End.Format(entity.DateLayout),
			})
		}
		resp.ReservedDates[siteID.String()] = out
	}
	return resp
}
