package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluecollar_bookings_created_total",
		Help: "Booking orders successfully created.",
	})

	BookingsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluecollar_bookings_closed_total",
		Help: "Booking orders transitioned to completed.",
	})

	ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluecollar_reviews_submitted_total",
		Help: "Reviews accepted for closed orders.",
	})

	DiscoverySearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluecollar_discovery_searches_total",
		Help: "Artisan discovery searches served.",
	})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bluecollar_logins_total",
		Help: "Successful logins by account type.",
	}, []string{"role"})
)

// Handler exposes the default prometheus registry as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
