package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
	"github.com/freshmart/api/config"
	"github.com/freshmart/api/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) (*database.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
}

// freshmart db:indexes
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the unique and query indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background()) //nolint:errcheck

		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes created.")
		return nil
	},
}

// freshmart db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the catalog with starter categories and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background()) //nolint:errcheck

		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}
		return seedCatalog(ctx, db)
	},
}

type seedProduct struct {
	name        string
	price       float64
	description string
	stock       int64
}

var seedData = map[string][]seedProduct{
	"Dairy": {
		{"Milk", 2.5, "Whole milk, 1L", 50},
		{"Cheddar Cheese", 6.0, "Mature cheddar, 400g", 20},
	},
	"Bakery": {
		{"Sourdough Bread", 4.2, "Freshly baked loaf", 15},
	},
	"Produce": {
		{"Bananas", 1.1, "Per kg", 100},
		{"Tomatoes", 2.9, "Vine tomatoes, per kg", 60},
	},
}

// seedCatalog inserts the starter categories and products. Re-running is
// safe: existing categories are reused, their products skipped.
func seedCatalog(ctx context.Context, db *database.DB) error {
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)

	for name, items := range seedData {
		category, err := categories.FindByName(ctx, name)
		switch {
		case err == nil:
			fmt.Printf("category %q exists, skipping its products\n", name)
			continue
		case errors.Is(err, repositories.ErrNotFound):
			category = &models.Category{Name: name}
			if err := categories.Create(ctx, category); err != nil {
				return err
			}
		default:
			return err
		}

		for _, item := range items {
			p := &models.Product{
				Name:        item.name,
				Price:       item.price,
				Category:    category.ID,
				Description: item.description,
				Stock:       item.stock,
			}
			if err := products.Create(ctx, p); err != nil {
				return err
			}
		}
		fmt.Printf("seeded category %q with %d products\n", name, len(items))
	}

	fmt.Println("Seeding complete.")
	return nil
}
