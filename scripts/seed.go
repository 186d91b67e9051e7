package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/star-burger/backend/internal/adapters/database"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	"github.com/star-burger/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	productRepo := database.NewProductAdapter(pgClient)
	restaurantRepo := database.NewRestaurantAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				order_items,
				orders,
				restaurant_menu_items,
				products,
				product_categories,
				restaurants,
				locations
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed product categories
	pizzaCategory := uuid.New().String()
	drinksCategory := uuid.New().String()
	categories := []entities.ProductCategory{
		{ID: pizzaCategory, Name: "Pizza"},
		{ID: drinksCategory, Name: "Drinks"},
	}
	for _, c := range categories {
		if _, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO product_categories (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name,
		); err != nil {
			log.Printf("Failed to create category %s: %v", c.Name, err)
		}
	}

	// 2. Seed products
	products := []entities.Product{
		{ID: uuid.New().String(), Name: "Margherita", CategoryID: &pizzaCategory, Price: decimal.RequireFromString("499.00"), Description: "Tomato, mozzarella, basil"},
		{ID: uuid.New().String(), Name: "Pepperoni", CategoryID: &pizzaCategory, Price: decimal.RequireFromString("649.90"), Description: "Pepperoni, mozzarella"},
		{ID: uuid.New().String(), Name: "Quattro Formaggi", CategoryID: &pizzaCategory, Price: decimal.RequireFromString("719.00"), SpecialStatus: true, Description: "Four cheeses"},
		{ID: uuid.New().String(), Name: "Lemonade", CategoryID: &drinksCategory, Price: decimal.RequireFromString("149.00"), Description: "House lemonade, 0.5l"},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			log.Printf("Failed to create product %s: %v", products[i].Name, err)
		}
	}

	// 3. Seed restaurants
	restaurants := []entities.Restaurant{
		{ID: uuid.New().String(), Name: "Star Burger Arbat", Address: "Москва, ул. Арбат, 12", ContactPhone: "+7 926 123-45-67"},
		{ID: uuid.New().String(), Name: "Star Burger Tverskaya", Address: "Москва, ул. Тверская, 22", ContactPhone: "+7 926 765-43-21"},
	}
	for i := range restaurants {
		if err := restaurantRepo.Create(ctx, &restaurants[i]); err != nil {
			log.Printf("Failed to create restaurant %s: %v", restaurants[i].Name, err)
		}
	}

	// 4. Seed menu availability: first restaurant carries the full menu,
	// second everything but the special.
	for _, r := range restaurants {
		for _, p := range products {
			available := r.ID == restaurants[0].ID || !p.SpecialStatus
			if err := restaurantRepo.SetMenuItem(ctx, &entities.RestaurantMenuItem{
				RestaurantID: r.ID,
				ProductID:    p.ID,
				Availability: available,
			}); err != nil {
				log.Printf("Failed to set menu item %s/%s: %v", r.Name, p.Name, err)
			}
		}
	}

	log.Printf("Seeded %d categories, %d products, %d restaurants", len(categories), len(products), len(restaurants))
}
