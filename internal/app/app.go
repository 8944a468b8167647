package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"aipipeline/internal/config"
	"aipipeline/internal/handlers"
	"aipipeline/internal/pdf"
	"aipipeline/internal/repositories"
	"aipipeline/internal/routes"
	"aipipeline/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "aipipeline/docs"
)

func Run() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal("config: ", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("database connection: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("database close: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("database ping: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Auth.JWTSecret), cfg.AccessTTL())

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	notifier, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("telegram notifier disabled: %v", err)
	}

	userService := services.NewUserService(userRepo, authService, emailService)
	dealService := services.NewDealService(dealRepo, activityRepo, notifier)
	analyticsService := services.NewAnalyticsService(dealService)

	var aiService services.AIService
	if cfg.AI.APIKey != "" {
		aiService, err = services.NewAIService(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AITimeout())
		if err != nil {
			log.Fatal("ai client: ", err)
		}
	} else {
		log.Printf("[ai] no api key configured, assistant disabled")
	}

	reportGen := pdf.NewReportGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	dealHandler := handlers.NewDealHandler(dealService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, reportGen)
	aiHandler := handlers.NewAIHandler(aiService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		authHandler,
		dealHandler,
		analyticsHandler,
		aiHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
