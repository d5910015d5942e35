package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/infrastructure/clients/postgres"
	"github.com/cravemap/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS hotspots (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	tags TEXT[] NOT NULL DEFAULT '{}',
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS restaurants (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	tags TEXT[] NOT NULL DEFAULT '{}',
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL,
	cuisine TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	price_level INTEGER NOT NULL DEFAULT 1
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	if _, err := client.DB().ExecContext(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create tables: %v\n", err)
		os.Exit(1)
	}

	hotspots := []entities.Hotspot{
		{ID: uuid.New().String(), Name: "Victoria Island Waterfront", Tags: []string{"nightlife", "rooftop", "views"}, Address: "Ahmadu Bello Way", City: "Lagos", Category: "nightlife", Location: entities.Location{Latitude: 6.4281, Longitude: 3.4219}, Rating: 4.6, ReviewCount: 9400},
		{ID: uuid.New().String(), Name: "Freedom Park", Tags: []string{"live music", "history", "chill"}, Address: "Broad Street", City: "Lagos", Category: "park", Location: entities.Location{Latitude: 6.4500, Longitude: 3.3958}, Rating: 4.5, ReviewCount: 8600},
		{ID: uuid.New().String(), Name: "New Afrika Shrine", Tags: []string{"live music", "afrobeat", "nightlife"}, Address: "Ikeja", City: "Lagos", Category: "nightlife", Location: entities.Location{Latitude: 6.6166, Longitude: 3.3566}, Rating: 4.5, ReviewCount: 8900},
		{ID: uuid.New().String(), Name: "Nike Art Gallery", Tags: []string{"art", "gallery", "quiet"}, Address: "Lekki", City: "Lagos", Category: "culture", Location: entities.Location{Latitude: 6.4433, Longitude: 3.5086}, Rating: 4.7, ReviewCount: 6700},
		{ID: uuid.New().String(), Name: "Tarkwa Bay Beach", Tags: []string{"beach", "surf", "relaxed"}, Address: "Tarkwa Bay", City: "Lagos", Category: "beach", Location: entities.Location{Latitude: 6.4084, Longitude: 3.3890}, Rating: 4.2, ReviewCount: 5100},
		{ID: uuid.New().String(), Name: "Jabi Lake Waterfront", Tags: []string{"views", "chill", "boating"}, Address: "Jabi", City: "Abuja", Category: "park", Location: entities.Location{Latitude: 9.0765, Longitude: 7.3986}, Rating: 4.4, ReviewCount: 6100},
	}

	restaurants := []entities.Restaurant{
		{ID: uuid.New().String(), Name: "Pronto Pizza", Tags: []string{"pizza", "quick", "casual"}, Address: "Admiralty Way", City: "Lagos", Cuisine: "italian", Location: entities.Location{Latitude: 6.4430, Longitude: 3.4530}, Rating: 4.3, ReviewCount: 2100, PriceLevel: 2},
		{ID: uuid.New().String(), Name: "Mama Put Kitchen", Tags: []string{"nigerian", "jollof", "spicy"}, Address: "Surulere", City: "Lagos", Cuisine: "nigerian", Location: entities.Location{Latitude: 6.5005, Longitude: 3.3542}, Rating: 4.6, ReviewCount: 4800, PriceLevel: 1},
		{ID: uuid.New().String(), Name: "Sakura House", Tags: []string{"sushi", "japanese", "date night"}, Address: "Victoria Island", City: "Lagos", Cuisine: "japanese", Location: entities.Location{Latitude: 6.4298, Longitude: 3.4216}, Rating: 4.5, ReviewCount: 1700, PriceLevel: 3},
		{ID: uuid.New().String(), Name: "Smoke and Fire BBQ", Tags: []string{"bbq", "grill", "suya"}, Address: "Ikoyi", City: "Lagos", Cuisine: "grill", Location: entities.Location{Latitude: 6.4541, Longitude: 3.4350}, Rating: 4.4, ReviewCount: 3300, PriceLevel: 2},
		{ID: uuid.New().String(), Name: "Green Bowl", Tags: []string{"vegan", "salads", "healthy"}, Address: "Lekki Phase 1", City: "Lagos", Cuisine: "vegan", Location: entities.Location{Latitude: 6.4470, Longitude: 3.4700}, Rating: 4.2, ReviewCount: 900, PriceLevel: 2},
		{ID: uuid.New().String(), Name: "Dragon Wok", Tags: []string{"chinese", "noodles", "quick"}, Address: "Yaba", City: "Lagos", Cuisine: "chinese", Location: entities.Location{Latitude: 6.5095, Longitude: 3.3711}, Rating: 4.1, ReviewCount: 1500, PriceLevel: 1},
		{ID: uuid.New().String(), Name: "Wakkis", Tags: []string{"indian", "curry", "spicy"}, Address: "Wuse 2", City: "Abuja", Cuisine: "indian", Location: entities.Location{Latitude: 9.0820, Longitude: 7.4800}, Rating: 4.5, ReviewCount: 3900, PriceLevel: 2},
	}

	for _, h := range hotspots {
		_, err := client.DB().ExecContext(ctx,
			`INSERT INTO hotspots (id, name, tags, address, city, category, latitude, longitude, rating, review_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			h.ID, h.Name, pq.Array(h.Tags), h.Address, h.City, h.Category,
			h.Location.Latitude, h.Location.Longitude, h.Rating, h.ReviewCount,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed hotspot %s: %v\n", h.Name, err)
			os.Exit(1)
		}
	}

	for _, r := range restaurants {
		_, err := client.DB().ExecContext(ctx,
			`INSERT INTO restaurants (id, name, tags, address, city, cuisine, latitude, longitude, rating, review_count, price_level)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			r.ID, r.Name, pq.Array(r.Tags), r.Address, r.City, r.Cuisine,
			r.Location.Latitude, r.Location.Longitude, r.Rating, r.ReviewCount, r.PriceLevel,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed restaurant %s: %v\n", r.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %d hotspots and %d restaurants\n", len(hotspots), len(restaurants))
}
