package wire

import (
	"net/http"

	"campground-booking/internal/adaptor"
	"campground-booking/internal/availability"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/usecase"
	"campground-booking/pkg/middleware"
	"campground-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router and the services background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers. The reservation repository is the availability index.
func Wiring(repo *repository.Repository, config *utils.Config, clock utils.Clock, logger *zap.Logger) *App {
	return WiringWithIndex(repo, repo.Reservation, config, clock, logger)
}

// WiringWithIndex is Wiring with an explicit availability index.
func WiringWithIndex(repo *repository.Repository, index availability.Index, config *utils.Config, clock utils.Clock, logger *zap.Logger) *App {
	service := usecase.NewService(repo, index, config, clock, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wirePricing(r, handler.Pricing)
	wireAvailability(r, handler.Availability)
	wireReservation(r, handler.Reservation)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
