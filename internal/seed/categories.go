package seed

import (
	"context"
	"fmt"

	"entrepreneurawards/internal/store"
	"entrepreneurawards/pkg/types"
)

// defaultCategories are the industries offered on a fresh install. IDs are
// fixed so re-running the seed updates rows in place. Categories created
// from the admin dashboard are left alone.
//
// To generate new IDs: `go run ./cmd/entrepreneurawards nanoid`
var defaultCategories = []types.IndustryCategory{
	{ID: "Zr1qQd8GxkJcV0pW3nLsT7yHbM2aEfUo", Name: "Agriculture"},
	{ID: "q8LtN3vR0cXbG5mJ1zHsW6kYpD9eAfTu", Name: "Construction"},
	{ID: "H2xKp7VnQ4rT9cLm0bYsJ6wGdE1aZfRu", Name: "Creative & Media"},
	{ID: "b5WnJ0tQ8yXcR3mL6pKsV1zGhD7eAfTo", Name: "Education"},
	{ID: "M9cTq2LxV6nR0bJ4wKsY8pGhD3eAfZuE", Name: "Fashion & Beauty"},
	{ID: "t3RbN7wQ1xVcK9mL5pJsY0zGhD4eAfTu", Name: "Finance"},
	{ID: "F6pLq0XnV3rT8cJm2bKsW5yGdE9aZhRu", Name: "Food & Hospitality"},
	{ID: "k1VnR5tQ9yXcL2mJ7pKsB0zGhD6eAfWo", Name: "Health"},
	{ID: "W4cTq8LxN1nR6bJ0wKsY3pGhD9eAfZuV", Name: "Manufacturing"},
	{ID: "p7RbN2wQ5xVcK0mL9pJsY4zGhD1eAfTx", Name: "Retail"},
	{ID: "D0pLq6XnV9rT3cJm5bKsW8yGdE2aZhRk", Name: "Technology"},
	{ID: "y9VnR1tQ4yXcL7mJ3pKsB6zGhD0eAfWq", Name: "Transport & Logistics"},
}

// SeedCategories inserts or refreshes every default category.
func SeedCategories(ctx context.Context, repo *store.CategoryRepository) error {
	fmt.Println("Starting category sync...")
	fmt.Printf("  Seed file contains %d categories\n", len(defaultCategories))

	upserted := 0
	for _, cat := range defaultCategories {
		fmt.Printf("  Upserting category: %s\n", cat.Name)
		if err := repo.UpsertCategory(ctx, &cat); err != nil {
			return fmt.Errorf("failed to upsert category %s: %w", cat.Name, err)
		}
		upserted++
	}

	fmt.Printf("\nSync complete: %d upserted\n", upserted)
	return nil
}
