package main

import (
	"log"

	"timetrack/backend/internal/config"
	"timetrack/backend/internal/db"
	"timetrack/backend/internal/handler"
	"timetrack/backend/internal/repository"
	"timetrack/backend/internal/router"
	"timetrack/backend/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	bookingRepo := repository.NewBookingRepository(database)

	authService := service.NewAuthService(userRepo, activityRepo, bookingRepo, cfg.JWTSecret, cfg.TokenTTL)
	activityService := service.NewActivityService(activityRepo)
	bookingService := service.NewBookingService(bookingRepo)
	analysisService := service.NewAnalysisService(activityService, bookingService)

	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(activityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	engine := router.New(authService, authHandler, activityHandler, bookingHandler, analysisHandler, cfg.CORSOrigins)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
