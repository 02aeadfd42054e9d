package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"inventory/internal/models"
)

// productRow is the persisted shape of a product.
type productRow struct {
	ID          int64 `gorm:"primaryKey"`
	Name        string
	Price       float64
	Description string
	Stock       int32
}

func (productRow) TableName() string { return "products" }

func (r productRow) toModel() models.Product {
	return models.Product{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Stock:       r.Stock,
	}.WithID(r.ID)
}

// GORMProductRepository is the database-backed ProductRepository.
// It owns the connection and allows one statement in flight at a time.
type GORMProductRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// The schema must already exist, see database.Open.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product and returns its store-assigned ID.
func (r *GORMProductRepository) Create(ctx context.Context, product models.Product) (int64, error) {
	row := productRow{
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Stock:       product.Stock,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return row.ID, nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var rows []productRow

	r.mu.Lock()
	err := r.db.WithContext(ctx).Find(&rows).Error
	r.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (models.Product, bool, error) {
	var row productRow

	r.mu.Lock()
	err := r.db.WithContext(ctx).Take(&row, id).Error
	r.mu.Unlock()

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, false, nil
		}
		return models.Product{}, false, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return row.toModel(), true, nil
}

// Update overwrites every mutable field of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id int64, product models.Product) (int64, error) {
	// A map so zero values (price 0, stock 0, empty description) are written too.
	fields := map[string]interface{}{
		"name":        product.Name,
		"price":       product.Price,
		"description": product.Description,
		"stock":       product.Stock,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.db.WithContext(ctx).Delete(&productRow{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Close releases the underlying connection.
func (r *GORMProductRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	return sqlDB.Close()
}
