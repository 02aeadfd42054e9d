package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product models.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (models.Product, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Bool(1), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, product models.Product) (int64, error) {
	args := m.Called(ctx, id, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(messageID string, payload interface{}) error {
	args := m.Called(messageID, payload)
	return args.Error(0)
}

var (
	ctx    = context.Background()
	widget = models.Product{Name: "Widget", Price: 9.99, Description: "d", Stock: 5}
	dbErr  = errors.New("database is locked")
)

func eventOfType(eventType string, id int64) interface{} {
	return mock.MatchedBy(func(payload interface{}) bool {
		event, ok := payload.(models.ProductEvent)
		return ok && event.Type == eventType && event.ProductID == id && event.EventID != ""
	})
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	expectedProducts := []models.Product{widget.WithID(1), widget.WithID(2)}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	mockRepo.On("GetAll", ctx).Return(nil, dbErr).Once()
	_, err = service.GetAllProducts(ctx)
	assert.True(t, apperrors.Is(err, apperrors.KindDatabase))
	assert.Contains(t, err.Error(), "database is locked")

	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, int64(1)).Return(widget.WithID(1), true, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, widget.WithID(1), product)

	// Test product not found
	mockRepo.On("GetByID", ctx, int64(99)).Return(models.Product{}, false, nil).Once()
	_, err = service.GetProductByID(ctx, 99)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	// Test database failure
	mockRepo.On("GetByID", ctx, int64(3)).Return(models.Product{}, false, dbErr).Once()
	_, err = service.GetProductByID(ctx, 3)
	assert.True(t, apperrors.Is(err, apperrors.KindDatabase))

	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ, nil)

	// Test successful creation
	mockRepo.On("Create", ctx, widget).Return(int64(7), nil).Once()
	mockMQ.On("Publish", mock.AnythingOfType("string"), eventOfType(models.ProductCreated, 7)).Return(nil).Once()
	id, err := service.CreateProduct(ctx, widget)
	assert.NoError(t, err)
	assert.EqualValues(t, 7, id)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", ctx, widget).Return(int64(0), dbErr).Once()
	_, err = service.CreateProduct(ctx, widget)
	assert.True(t, apperrors.Is(err, apperrors.KindDatabase))

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ, nil)

	mockRepo.On("Create", ctx, widget).Return(int64(1), nil).Once()
	mockMQ.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()

	id, err := service.CreateProduct(ctx, widget)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, id)
	mockMQ.AssertExpectations(t)
}

func TestProductService_InvalidInputNeverReachesRepository(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ, nil)

	invalid := models.Product{Name: "   ", Price: 1, Stock: 1}

	_, err := service.CreateProduct(ctx, invalid)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))

	err = service.UpdateProduct(ctx, 1, invalid)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	mockMQ.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ, nil)

	updatedProduct := models.Product{Name: "Widget2", Price: 19.99, Description: "d2", Stock: 3}

	// Test successful update
	mockRepo.On("Update", ctx, int64(1), updatedProduct).Return(int64(1), nil).Once()
	mockMQ.On("Publish", mock.Anything, eventOfType(models.ProductUpdated, 1)).Return(nil).Once()
	err := service.UpdateProduct(ctx, 1, updatedProduct)
	assert.NoError(t, err)

	// Test update of a missing product
	mockRepo.On("Update", ctx, int64(99), updatedProduct).Return(int64(0), nil).Once()
	err = service.UpdateProduct(ctx, 99, updatedProduct)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	// Test database failure
	mockRepo.On("Update", ctx, int64(2), updatedProduct).Return(int64(0), dbErr).Once()
	err = service.UpdateProduct(ctx, 2, updatedProduct)
	assert.True(t, apperrors.Is(err, apperrors.KindDatabase))

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ, nil)

	// Test successful deletion
	mockRepo.On("Delete", ctx, int64(1)).Return(int64(1), nil).Once()
	mockMQ.On("Publish", mock.Anything, mock.MatchedBy(func(payload interface{}) bool {
		event, ok := payload.(models.ProductEvent)
		return ok && event.Type == models.ProductDeleted && event.Product == nil
	})).Return(nil).Once()
	err := service.DeleteProduct(ctx, 1)
	assert.NoError(t, err)

	// Deleting again reports not found
	mockRepo.On("Delete", ctx, int64(1)).Return(int64(0), nil).Once()
	err = service.DeleteProduct(ctx, 1)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_Validate(t *testing.T) {
	service := services.NewProductService(nil, nil, nil)

	tests := []struct {
		name    string
		product models.Product
		wantMsg string
	}{
		{"valid", widget, ""},
		{"zero price and stock", models.Product{Name: "Free"}, ""},
		{"empty name", models.Product{Name: "", Price: 1}, "name cannot be empty"},
		{"whitespace name", models.Product{Name: " \t\n", Price: 1}, "name cannot be empty"},
		{"unicode whitespace name", models.Product{Name: "\u00a0\u2003", Price: 1}, "name cannot be empty"},
		{"separator-only name", models.Product{Name: " \x1c\x1f ", Price: 1}, "name cannot be empty"},
		{"padded name", models.Product{Name: "  Widget  ", Price: 1}, ""},
		{"negative price", models.Product{Name: "a", Price: -0.01}, "price cannot be negative"},
		{"negative stock", models.Product{Name: "a", Stock: -1}, "stock cannot be negative"},
		{"first violation wins", models.Product{Name: "", Price: -1, Stock: -1}, "name cannot be empty"},
		{"price before stock", models.Product{Name: "a", Price: -1, Stock: -1}, "price cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Validate(tt.product)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestProperty_ValidationReportsFirstViolation(t *testing.T) {
	service := services.NewProductService(nil, nil, nil)
	properties := gopter.NewProperties(nil)

	properties.Property("validation fails exactly on the first broken rule", prop.ForAll(
		func(name string, price float64, stock int32) bool {
			err := service.Validate(models.Product{Name: name, Price: price, Stock: stock})

			var want string
			switch {
			case name == "" || name == " " || name == "\t \n":
				want = "name cannot be empty"
			case price < 0:
				want = "price cannot be negative"
			case stock < 0:
				want = "stock cannot be negative"
			}

			if want == "" {
				return err == nil
			}
			return apperrors.Is(err, apperrors.KindBadRequest) && err.Error() == want
		},
		gen.OneConstOf("", " ", "\t \n", "Widget", " padded "),
		gen.Float64Range(-100, 100),
		gen.Int32Range(-10, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
