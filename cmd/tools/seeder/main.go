// Command seeder resets the demo catalog and coupon book in Redis.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-shop/internal/catalog"
	"github.com/noah-isme/backend-shop/internal/coupon"
	"github.com/noah-isme/backend-shop/internal/store"
)

func main() {
	_ = godotenv.Load()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Fatal("REDIS_URL is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshots := store.New(client)
	products := catalog.DefaultProducts()
	if err := snapshots.Save(ctx, store.KeyProducts, products); err != nil {
		log.Fatalf("seed products: %v", err)
	}
	coupons := coupon.DefaultCoupons()
	if err := snapshots.Save(ctx, store.KeyCoupons, coupons); err != nil {
		log.Fatalf("seed coupons: %v", err)
	}

	log.Printf("seeded %d products and %d coupons", len(products), len(coupons))
}
