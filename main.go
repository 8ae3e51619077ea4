package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"trail-profile-service/cache"
	"trail-profile-service/config"
	"trail-profile-service/handlers"
	"trail-profile-service/middleware"
	"trail-profile-service/models"
	"trail-profile-service/services"
	"trail-profile-service/utils"
	"trail-profile-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := config.Load()

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, profile pictures only
	})

	// 🔐 GLOBAL: only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))
	app.Use(middleware.UserContextMiddleware())

	allowedOriginsList := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Statistics{},
		&models.Badge{},
		&models.Achievement{},
		&models.Activity{},
		&models.UserSavedTrail{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	var pictures utils.PictureStore
	if cfg.R2Enabled() {
		pictures, err = utils.NewR2PictureStore(
			cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2Bucket, cfg.CDNBaseURL)
		if err != nil {
			log.Fatal("failed to initialize R2 picture store:", err)
		}
		log.Println("✅ Profile pictures stored in R2")
	} else {
		pictures, err = utils.NewLocalPictureStore(cfg.UploadDir)
		if err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
		log.Printf("✅ Profile pictures stored locally in %s", cfg.UploadDir)
	}

	store := cache.New(cfg.RedisURL)
	authClient := services.NewAuthServiceClient(cfg.AuthServiceURL, cfg.AuthServiceToken)

	var trailClient *services.TrailServiceClient
	if cfg.TrailServiceURL != "" {
		trailClient = services.NewTrailServiceClient(cfg.TrailServiceURL)
		log.Printf("✅ Trail service client enabled (%s)", cfg.TrailServiceURL)
	}

	profileService := services.NewProfileService(db, authClient, store, pictures)
	statisticsService := services.NewStatisticsService(db)
	badgeService := services.NewBadgeService(db)
	achievementService := services.NewAchievementService(db)
	activityService := services.NewActivityService(db)
	savedTrailService := services.NewSavedTrailService(db, trailClient)

	if err := badgeService.CreateDefaultBadges(); err != nil {
		log.Printf("⚠️ Failed to seed default badges: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streakWorker := workers.NewStreakResetWorker(db)
	streakWorker.Start(ctx)

	statisticsService.StartRankScheduler()

	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupStatisticsRoutes(app, statisticsService)
	handlers.SetupBadgeRoutes(app, badgeService)
	handlers.SetupAchievementRoutes(app, achievementService)
	handlers.SetupActivityRoutes(app, activityService)
	handlers.SetupSavedTrailRoutes(app, savedTrailService)

	app.Static("/uploads/profile-pictures", "./"+cfg.UploadDir)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Println("✅ Streak Reset Worker running")
	log.Println("✅ Rank scheduler running (hourly)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
