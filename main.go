package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lavka/internal/config"
	"lavka/internal/handlers"
	"lavka/internal/middleware"
	"lavka/internal/models"
	"lavka/internal/repositories"
	"lavka/internal/services"
	"lavka/pkg/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The broker is best effort: order events are a side channel, so a
	// missing broker downgrades to local-only operation instead of
	// refusing to serve requests.
	var publisher services.EventPublisher
	mqClient, err := events.NewClient(events.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
	} else {
		publisher = mqClient
		defer mqClient.Close()
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.PasswordSalt, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, authService)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	reviewService := services.NewReviewService(reviewRepo, productRepo)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(authService)
	authOptional := middleware.AuthOptional(authService)

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewUserHandler(userService).RegisterRoutes(api, authRequired)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, authRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(api, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authRequired)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, authRequired, authOptional)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if mqClient != nil {
		go func() {
			log.Println("Starting order event consumer...")
			err := mqClient.Consume(func(msg amqp.Delivery) error {
				log.Printf("Order event %s: %s", msg.RoutingKey, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Order event consumer stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
