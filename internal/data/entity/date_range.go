package entity

import (
	"fmt"
	"time"

	"campground-booking/pkg/apperror"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a stay [Start, End): Start is the check-in date, End the check-out date.
// Both are calendar dates stored as UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Date returns the UTC midnight for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the clock part of t, keeping its calendar day in t's location.
func TruncateDate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// NewDateRange requires start < end, i.e. at least one night.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start, end = TruncateDate(start), TruncateDate(end)
	if !start.Before(end) {
		return DateRange{}, apperror.InvalidRange("check-out %s must be after check-in %s",
			end.Format(DateLayout), start.Format(DateLayout))
	}
	return DateRange{Start: start, End: end}, nil
}

func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, apperror.New(apperror.CodeInvalidRange, "invalid check-in date", err)
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, apperror.New(apperror.CodeInvalidRange, "invalid check-out date", err)
	}
	return NewDateRange(start, end)
}

// Overlaps is the half-open interval test. A check-out on the same day as another
// stay's check-in does not overlap.
func Overlaps(a, b DateRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return Overlaps(r, other)
}

// Contains reports whether the night starting on d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = TruncateDate(d)
	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) NightCount() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Nights lists every night of the stay in order, from check-in up to the night before check-out.
func (r DateRange) Nights() []time.Time {
	nights := make([]time.Time, 0, r.NightCount())
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// IsWeekendNight classifies Friday and Saturday nights as weekend.
func IsWeekendNight(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
