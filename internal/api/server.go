package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventsync/eventsync-api/docs"
	v1 "github.com/eventsync/eventsync-api/internal/api/handler/v1"
	"github.com/eventsync/eventsync-api/internal/api/middleware"
	"github.com/eventsync/eventsync-api/internal/config"
	"github.com/eventsync/eventsync-api/internal/notifier"
	"github.com/eventsync/eventsync-api/internal/repository"
	"github.com/eventsync/eventsync-api/internal/repository/dao"
	"github.com/eventsync/eventsync-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	notifier *notifier.Publisher
}

func NewServer(conf *config.AppConfig, db *gorm.DB, publisher *notifier.Publisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:   conf,
		Router:   engine,
		notifier: publisher,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	clubHandler := s.initClubHandler(db)
	notificationHandler := s.initNotificationHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, registrationHandler, clubHandler, notificationHandler, leaderboardHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo, s.notifier)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	svc := service.NewEventService(eventRepo, regRepo, userRepo, clubRepo, s.notifier)
	uSvc := service.NewUserService(userRepo, s.notifier)
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	svc := service.NewRegistrationService(regRepo, eventRepo, userRepo, clubRepo, s.notifier)
	eSvc := service.NewEventService(eventRepo, regRepo, userRepo, clubRepo, s.notifier)
	uSvc := service.NewUserService(userRepo, s.notifier)
	handler := v1.NewRegistrationHandler(svc, eSvc, uSvc)

	return handler
}

func (s *Server) initClubHandler(db *gorm.DB) *v1.ClubHandler {
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewClubService(clubRepo, userRepo)
	uSvc := service.NewUserService(userRepo, s.notifier)
	handler := v1.NewClubHandler(svc, uSvc)

	return handler
}

func (s *Server) initNotificationHandler(db *gorm.DB) *v1.NotificationHandler {
	repo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewNotificationService(repo)
	uSvc := service.NewUserService(userRepo, s.notifier)
	handler := v1.NewNotificationHandler(svc, uSvc)

	return handler
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	svc := service.NewLeaderboardService(userRepo, clubRepo)
	handler := v1.NewLeaderboardHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	registrationHandler *v1.RegistrationHandler,
	clubHandler *v1.ClubHandler,
	notificationHandler *v1.NotificationHandler,
	leaderboardHandler *v1.LeaderboardHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users", userHandler.HandleListUsers)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PATCH("/users/:userID/status", userHandler.HandleSetAccountStatus)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PATCH("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authed.POST("/events/:eventID/approve", eventHandler.HandleApproveEvent)
		authed.POST("/events/:eventID/reject", eventHandler.HandleRejectEvent)

		authed.POST("/events/:eventID/register", registrationHandler.HandleRegister)
		authed.DELETE("/events/:eventID/register", registrationHandler.HandleCancelRegistration)
		authed.GET("/events/:eventID/registrations", registrationHandler.HandleListRegistrations)
		authed.GET("/events/:eventID/ticket", registrationHandler.HandleGetTicket)
		authed.POST("/events/:eventID/checkin", registrationHandler.HandleCheckIn)
		authed.PATCH("/registrations/:registrationID/attendance", registrationHandler.HandleSetAttendance)
		authed.POST("/registrations/:registrationID/payment/verify", registrationHandler.HandleVerifyPayment)
		authed.POST("/registrations/:registrationID/payment/reject", registrationHandler.HandleRejectPayment)

		authed.GET("/clubs", clubHandler.HandleListClubs)
		authed.POST("/clubs", clubHandler.HandleCreateClub)
		authed.GET("/clubs/:clubID", clubHandler.HandleGetClub)
		authed.PATCH("/clubs/:clubID", clubHandler.HandleUpdateClub)
		authed.DELETE("/clubs/:clubID", clubHandler.HandleDeleteClub)
		authed.POST("/clubs/:clubID/join", clubHandler.HandleJoinClub)
		authed.POST("/clubs/:clubID/leave", clubHandler.HandleLeaveClub)

		authed.GET("/leaderboard", leaderboardHandler.HandleGetLeaderboard)

		authed.GET("/notifications", notificationHandler.HandleListNotifications)
		authed.PATCH("/notifications/:notificationID/read", notificationHandler.HandleMarkRead)
		authed.POST("/notifications/read-all", notificationHandler.HandleMarkAllRead)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventSync API"
	docs.SwaggerInfo.Description = "Campus event management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
