package repositories

import (
	"context"

	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations serialize access internally; every method runs exactly one statement.
type ProductRepository interface {
	// Create inserts the four mutable fields and returns the assigned ID.
	Create(ctx context.Context, product models.Product) (int64, error)
	// GetAll returns every product in storage order. Never nil.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByID reports found=false with a nil error when no row matches.
	GetByID(ctx context.Context, id int64) (product models.Product, found bool, err error)
	// Update overwrites all mutable fields and returns the number of rows changed.
	Update(ctx context.Context, id int64, product models.Product) (int64, error)
	// Delete removes the row and returns the number of rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}
