package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/payments"
	"ticketly/internal/pricing"
	"ticketly/internal/promos"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/internal/waitlist"
	"ticketly/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	dispatcher notifications.Dispatcher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, dispatcher notifications.Dispatcher) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		dispatcher: dispatcher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		eventsRepo, eventsController := r.buildEvents()
		events.SetupEventRoutes(api, eventsController)

		waitlistService, waitlistController := r.buildWaitlist(eventsRepo)
		waitlist.SetupWaitlistRoutes(api, waitlistController)

		promosService, promosController := r.buildPromos()
		promos.SetupPromoRoutes(api, promosController)

		ticketsRepo := tickets.NewRepository(r.db.GetPostgreSQL())
		tickets.SetupTicketRoutes(api, tickets.NewController(ticketsRepo))

		bookingsController := r.buildBookings(eventsRepo, waitlistService, promosService, ticketsRepo)
		bookings.SetupBookingRoutes(api, bookingsController)
	}
}

func (r *Router) buildEvents() (events.Repository, *events.Controller) {
	repo := events.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	service := events.NewService(repo, cacheService, r.config)
	return repo, events.NewController(service)
}

func (r *Router) buildWaitlist(eventsRepo events.Repository) (waitlist.Service, *waitlist.Controller) {
	repo := waitlist.NewRepository(r.db.GetPostgreSQL())
	service := waitlist.NewService(repo)
	return service, waitlist.NewController(service, eventsRepo)
}

func (r *Router) buildPromos() (promos.Service, *promos.Controller) {
	repo := promos.NewRepository(r.db.GetPostgreSQL())
	service := promos.NewService(repo)
	return service, promos.NewController(service)
}

func (r *Router) buildBookings(
	eventsRepo events.Repository,
	waitlistService waitlist.Service,
	promosService promos.Service,
	ticketsRepo tickets.Repository,
) *bookings.Controller {
	repo := bookings.NewRepository(r.db.GetPostgreSQL())
	usersRepo := users.NewRepository(r.db.GetPostgreSQL())
	feeCalculator := pricing.NewCalculator(r.config.Fees.PlatformFeeBasisPoints)
	verifier := payments.NewGatewayVerifier(r.config.Gateway)
	issuer := tickets.NewIssuer(ticketsRepo)

	service := bookings.NewService(
		repo,
		eventsRepo,
		usersRepo,
		waitlistService,
		promosService,
		feeCalculator,
		verifier,
		issuer,
		r.dispatcher,
	)
	return bookings.NewController(service)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
