package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musa/config"
	"musa/database"
	spotRepo "musa/database/repository/spot"
	ugcRepo "musa/database/repository/ugc"
	userRepoPkg "musa/database/repository/user"
	"musa/handlers"
	"musa/middleware"
	"musa/routes"
	"musa/services/events"
	ai "musa/services/intelligence"
	"musa/services/notification"
	"musa/services/places"
	"musa/services/spot"
	"musa/services/storage"
	"musa/services/user"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(cfg)
	utils.InitTokenCache(cfg)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, utils.GetTokenCacheClient(), database.MongoClient, 30*time.Second)

	// repositories.
	spots := spotRepo.NewMongoSpotRepo(cfg.DatabaseName)
	users := userRepoPkg.NewMongoUserRepo(cfg.DatabaseName)
	contents := ugcRepo.NewMongoUGCRepo(cfg.DatabaseName)

	// optional collaborators: the service degrades instead of refusing to start.
	var suggester spot.SpotSuggester
	gemini, err := ai.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("main: AI source disabled", zap.Error(err))
	} else {
		defer gemini.Close()
		suggester = ai.NewDefaultSpotGenerator(gemini, cfg, logger)
	}

	var mailer notification.Mailer
	if m, err := notification.NewSendGridMailer(cfg); err != nil {
		logger.Warn("main: confirmation emails disabled", zap.Error(err))
	} else {
		mailer = m
	}

	var uploader storage.ImageUploader
	if u, err := storage.NewCloudinaryStorage(cfg); err != nil {
		logger.Warn("main: image uploads disabled", zap.Error(err))
	} else {
		uploader = u
	}

	var geocoder places.Geocoder
	if g, err := places.NewGoogleGeocoder(cfg); err != nil {
		logger.Warn("main: place autocomplete disabled", zap.Error(err))
	} else {
		geocoder = g
	}

	// services.
	spotService := &spot.DefaultSpotService{
		Repo:      spots,
		UGC:       contents,
		Suggester: suggester,
		Uploader:  uploader,
		Logger:    logger,
	}
	userService := &user.DefaultUserService{
		Repo:        users,
		Tokens:      user.NewRedisTokenStore(utils.GetTokenCacheClient(), utils.EmailVerificationPrefix),
		ResetTokens: user.NewRedisTokenStore(utils.GetTokenCacheClient(), utils.PasswordResetPrefix),
		Mailer:      mailer,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.JWTTTL(),
		Logger:      logger,
	}

	handlerBundle := &handlers.HandlerBundle{
		Spot:              handlers.NewSpotHandler(spotService),
		Events:            handlers.NewEventHandler(events.NewEventbriteClient(cfg)),
		Auth:              handlers.NewAuthHandler(userService),
		UGC:               handlers.NewUGCHandler(spotService),
		Places:            handlers.NewPlacesHandler(geocoder),
		Health:            &handlers.HealthHandler{},
		Users:             users,
		JWTSecret:         cfg.JWTSecret,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	}
	if cfg.GeolocationEnabled {
		handlerBundle.Geolocator = middleware.NewGeolocator()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
