package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"matchup/controllers"
	"matchup/database"
	"matchup/helper"
	"matchup/initializers"
	"matchup/metrics"
	"matchup/middlewares"
	"matchup/models"
	"matchup/routes"
	"matchup/services"
)

// Deps are the outside resources the API runs against.
type Deps struct {
	Config   initializers.Config
	Stores   database.Stores
	Images   services.ImageStore
	Verifier services.Verifier
	Metrics  *metrics.Metrics
	Log      zerolog.Logger
}

type Server struct {
	Engine  *gin.Engine
	Hub     *controllers.Hub
	Limiter *middlewares.RateLimiter
}

func New(d Deps) *Server {
	cfg, log, st := d.Config, d.Log, d.Stores

	users := services.NewUserService(st.Users, services.UserRelations{
		Events:        st.Events,
		Messages:      st.Messages,
		Notifications: st.Notifications,
		Ratings:       st.Ratings,
		Requests:      st.Requests,
	}, log)
	hub := controllers.NewHub(users, d.Metrics, cfg.AllowedOrigins, log)

	notifications := services.NewNotificationService(st.Notifications, d.Metrics, log)
	notifications.SetNotifier(hub)

	tokens := helper.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	auth := services.NewAuthService(users, tokens, d.Verifier, d.Metrics, log)
	events := services.NewEventService(st.Events, log)
	messages := services.NewMessageService(st.Messages, notifications, log)
	requests := services.NewRequestService(st.Requests, notifications, log)
	hobbies := services.NewCrud[models.Hobby, models.HobbyInput, models.HobbyPatch]("Hobby", st.Hobbies, log)
	ratings := services.NewCrud[models.Rating, models.RatingInput, models.RatingPatch]("Rating", st.Ratings, log)
	media := services.NewMediaService(d.Images, users)

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	requireAuth := middlewares.RequireAuth(tokens)

	router := gin.New()
	router.Use(
		middlewares.RequestLogger(log),
		middlewares.Recovery(log),
		middlewares.Metrics(d.Metrics),
		middlewares.Cors(cfg.AllowedOrigins),
		middlewares.ErrorHandler(log),
	)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
	})

	routes.HealthRouter(router, d.Metrics.Handler())

	api := router.Group("/api")
	mediaController := controllers.NewMediaController(media)
	notificationController := controllers.NewNotificationController(notifications)
	messageController := controllers.NewMessageController(messages, users)

	routes.AuthRouter(api, controllers.NewAuthController(auth, cfg.CookieSecure), requireAuth, limiter.Handler())
	routes.UserRouter(api, routes.UserControllers{
		Users:         controllers.NewUserController(users),
		Messages:      messageController,
		Notifications: notificationController,
		Media:         mediaController,
	}, requireAuth)
	routes.ResourceRouter(api, "/events", controllers.NewEventController(events), requireAuth, false)
	routes.ResourceRouter(api, "/hobbies", controllers.NewCrudController[models.Hobby, models.HobbyInput, models.HobbyPatch](hobbies), requireAuth, false)
	routes.ResourceRouter(api, "/messages", messageController, requireAuth, false)
	routes.ResourceRouter(api, "/ratings", controllers.NewCrudController[models.Rating, models.RatingInput, models.RatingPatch](ratings), requireAuth, false)
	routes.ResourceRouter(api, "/requests", controllers.NewCrudController[models.Request, models.RequestInput, models.RequestPatch](requests), requireAuth, false)
	routes.ResourceRouter(api, "/notifications", notificationController, requireAuth, true)
	routes.HubRouter(api, hub, mediaController, requireAuth)

	return &Server{Engine: router, Hub: hub, Limiter: limiter}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}
