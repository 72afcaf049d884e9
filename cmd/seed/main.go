// Command seed wipes the store and loads demo data: an administrator, two
// managers, buyers, a few categories and products, one order and a mix of
// approved and pending reviews.
package main

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lavka/internal/config"
	"lavka/internal/models"
	"lavka/internal/repositories"
	"lavka/internal/services"
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

	entities := []interface{}{
		&models.Review{},
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	}
	log.Println("Resetting database...")
	for _, entity := range entities {
		if err := db.Migrator().DropTable(entity); err != nil {
			log.Fatalf("Failed to drop table: %v", err)
		}
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

	userRepo := repositories.NewGORMUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.PasswordSalt, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, authService)

	users := []services.UserInput{
		{Username: "admin", Email: "admin@example.com", Password: "AdminPass123!", Role: models.RoleAdmin},
		{Username: "manager1", Email: "manager1@example.com", Password: "ManagerPass123!", Role: models.RoleManager},
		{Username: "manager2", Email: "manager2@example.com", Password: "ManagerPass456!", Role: models.RoleManager},
		{Username: "buyer1", Email: "buyer1@example.com", Password: "BuyerPass123!", Role: models.RoleBuyer},
		{Username: "buyer2", Email: "buyer2@example.com", Password: "BuyerPass456!", Role: models.RoleBuyer},
	}
	created := make([]*models.User, 0, len(users))
	for _, input := range users {
		user, err := userService.Create(input)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", input.Email, err)
		}
		created = append(created, user)
		log.Printf("Seeded user %s (%s)", user.Username, user.Role)
	}
	buyer := created[3]

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	categoryService := services.NewCategoryService(categoryRepo)
	categoryNames := []string{"Smartphones", "Laptops", "Headphones"}
	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := categoryService.Create(name)
		if err != nil {
			log.Fatalf("Failed to seed category %s: %v", name, err)
		}
		categories = append(categories, category)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, categoryRepo)
	inputs := []services.ProductInput{
		{Name: "iPhone 13", Price: decimal.RequireFromString("799.99"), CategoryID: categories[0].ID, Description: "6.1 inch display, A15 Bionic", Stock: 25},
		{Name: "Pixel 8", Price: decimal.RequireFromString("649.00"), CategoryID: categories[0].ID, Description: "Tensor G3, 128 GB", Stock: 40},
		{Name: "ASUS ROG Strix G15", Price: decimal.RequireFromString("1499.50"), CategoryID: categories[1].ID, Description: "RTX 3060, 16 GB RAM", Stock: 10},
		{Name: "Sony WH-1000XM4", Price: decimal.RequireFromString("279.99"), CategoryID: categories[2].ID, Description: "Wireless noise cancelling", Stock: 60},
	}
	products := make([]*models.Product, 0, len(inputs))
	for _, input := range inputs {
		product, err := productService.Create(input)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", input.Name, err)
		}
		products = append(products, product)
		log.Printf("Seeded product %s", product.Name)
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	order, err := orderService.Create(buyer.ID, []services.OrderLine{
		{ProductID: products[0].ID, Quantity: 1},
		{ProductID: products[3].ID, Quantity: 2},
	})
	if err != nil {
		log.Fatalf("Failed to seed order: %v", err)
	}
	log.Printf("Seeded order %s, amount %s", order.ID, order.Amount)

	reviewRepo := repositories.NewGORMReviewRepository(db)
	reviews := []models.Review{
		{ProductID: products[0].ID, UserID: buyer.ID, Rating: 5, Text: "Excellent phone, battery lasts two days.", Status: models.ReviewApproved},
		{ProductID: products[0].ID, UserID: created[4].ID, Rating: 3, Text: "Good, but the price is hard to justify.", Status: models.ReviewApproved},
		{ProductID: products[3].ID, UserID: buyer.ID, Rating: 4, Text: "Noise cancelling works great on flights.", Status: models.ReviewPending},
	}
	for i := range reviews {
		if err := reviewRepo.Create(&reviews[i]); err != nil {
			log.Fatalf("Failed to seed review: %v", err)
		}
	}

	log.Println("Seed data loaded")
}
