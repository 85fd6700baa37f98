package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campground-booking/internal/availability"
	"campground-booking/internal/data/entity"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/data/repository/mocks"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*App, *entity.Site) {
	t.Helper()

	site := &entity.Site{
		Base:          entity.Base{ID: uuid.New()},
		CampgroundID:  uuid.New(),
		Name:          "Lakeside 3",
		BaseRate:      50000,
		Capacity:      4,
		MaxGuests:     8,
		ExtraGuestFee: 10000,
	}

	sites := new(mocks.MockSiteRepository)
	sites.On("FindByID", mock.Anything, site.ID).Return(site, nil)
	pricing := new(mocks.MockPricingRuleRepository)
	pricing.On("FindBySite", mock.Anything, site.ID).Return([]*entity.PricingRule{
		{SiteID: site.ID, DayType: entity.DayTypeWeekend, NightlyRate: 70000},
	}, nil)
	pricing.On("FindDiscounts", mock.Anything, site.CampgroundID, site.ID).Return([]*entity.DiscountRule{}, nil)
	events := new(mocks.MockIntegrityEventRepository)
	events.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	repo := &repository.Repository{
		Site:           sites,
		PricingRule:    pricing,
		IntegrityEvent: events,
		Idempotency:    repository.NewIdempotencyRepository(nil, time.Hour, zap.NewNop()),
	}
	config := &utils.Config{Booking: utils.BookingConfig{
		PriceTolerance: 100,
		PaymentTimeout: 30 * time.Minute,
		MaxAdvanceDays: 365,
		MaxStayNights:  30,
	}}
	clock := utils.FixedClock(time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC))

	return WiringWithIndex(repo, availability.NewMemoryIndex(clock), config, clock, zap.NewNop()), site
}

func do(t *testing.T, app *App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestRouter_BookingFlow(t *testing.T) {
	app, site := newTestApp(t)

	rec := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	stay := map[string]any{"site_id": site.ID.String(), "check_in": "2025-11-26", "check_out": "2025-11-27", "guests": 2}

	rec = do(t, app, http.MethodPost, "/api/pricing/quote", stay)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, app, http.MethodPost, "/api/reservations", stay)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			Reservation struct {
				ID          string `json:"id"`
				TotalAmount int64  `json:"total_amount"`
			} `json:"reservation"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, int64(50000), created.Data.Reservation.TotalAmount)

	adjacent := map[string]any{"site_id": site.ID.String(), "check_in": "2025-11-27", "check_out": "2025-11-28", "guests": 2}
	rec = do(t, app, http.MethodPost, "/api/reservations", adjacent)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	overlapping := map[string]any{"site_id": site.ID.String(), "check_in": "2025-11-26", "check_out": "2025-11-28", "guests": 2}
	rec = do(t, app, http.MethodPost, "/api/reservations", overlapping)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"CONFLICT"`)

	rec = do(t, app, http.MethodGet, "/api/sites/"+site.ID.String()+"/reserved-dates", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"check_in":"2025-11-26","check_out":"2025-11-27"}`)

	rec = do(t, app, http.MethodPost, "/api/reservations/"+created.Data.Reservation.ID+"/cancel", map[string]any{"reason": "weather"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, app, http.MethodGet, "/api/sites/"+site.ID.String()+"/reserved-dates", nil)
	assert.NotContains(t, rec.Body.String(), `"check_in":"2025-11-26"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	rec := do(t, app, http.MethodGet, "/api/bookings", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Route not found","reason":"NOT_FOUND"}`, rec.Body.String())
}
