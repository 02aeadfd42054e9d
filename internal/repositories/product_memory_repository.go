package repositories

import (
	"context"
	"sync"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// IDs grow monotonically and are never handed out twice, like the sqlite store.
type MemoryProductRepository struct {
	products map[int64]models.Product
	order    []int64 // insertion order, stands in for storage order
	lastID   int64
	mu       sync.Mutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
	}
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product models.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	r.products[r.lastID] = product.WithID(r.lastID)
	r.order = append(r.order, r.lastID)
	return r.lastID, nil
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id int64) (models.Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	return product, ok, nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, id int64, product models.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	r.products[id] = product.WithID(id)
	return 1, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}
