package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/repositories"
)

// EventPublisher delivers product change events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(messageID string, payload interface{}) error
}

// ProductService handles business logic related to products.
// Every error it returns is an *apperrors.Error.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil,
// in which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// Validate checks the product against the business rules.
func (s *ProductService) Validate(product models.Product) error {
	return validateProduct(s.validate, product)
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (models.Product, error) {
	product, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, apperrors.Database(err)
	}
	if !found {
		return models.Product{}, apperrors.NotFound()
	}
	return product, nil
}

// CreateProduct validates and stores a new product, returning its ID.
// Any client-supplied ID is ignored.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	if err := s.Validate(product); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return 0, apperrors.Database(err)
	}

	created := product.WithID(id)
	s.publish(models.ProductCreated, id, &created)
	return id, nil
}

// UpdateProduct validates and overwrites an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, product models.Product) error {
	if err := s.Validate(product); err != nil {
		return err
	}

	rows, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return apperrors.Database(err)
	}
	if rows == 0 {
		return apperrors.NotFound()
	}

	updated := product.WithID(id)
	s.publish(models.ProductUpdated, id, &updated)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if rows == 0 {
		return apperrors.NotFound()
	}

	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// publish sends a change event. The write is already committed, so a
// failed publish is logged and otherwise ignored.
func (s *ProductService) publish(eventType string, id int64, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(event.EventID, event); err != nil {
		s.logger.Warn("Failed to publish product event",
			zap.String("event_id", event.EventID),
			zap.String("type", eventType),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
	}
}
