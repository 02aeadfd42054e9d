package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/services"
)

const (
	msgProductUpdated = "Product updated successfully"
	msgProductDeleted = "Product deleted successfully"
)

// ProductHandler handles HTTP requests for products.
// Handlers return *apperrors.Error values; the app's error handler renders them.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newBodyValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct stores a new product and responds with its ID.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.parseProduct(c)
	if err != nil {
		return err
	}

	id, err := h.service.CreateProduct(c.UserContext(), product)
	if err != nil {
		return err
	}
	return c.JSON(models.NewAPIResponse(id))
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(models.NewAPIResponse(products))
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(models.NewAPIResponse(product))
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.parseProduct(c)
	if err != nil {
		return err
	}

	if err := h.service.UpdateProduct(c.UserContext(), id, product); err != nil {
		return err
	}
	return c.JSON(models.NewAPIResponse(msgProductUpdated))
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(models.NewAPIResponse(msgProductDeleted))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("invalid product id")
	}
	return id, nil
}

// newBodyValidator reports fields by their JSON name.
func newBodyValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseProduct decodes the request body. Every mutable field is required;
// business rules are checked later by the service.
func (h *ProductHandler) parseProduct(c *fiber.Ctx) (models.Product, error) {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return models.Product{}, apperrors.BadRequest("invalid request body: " + err.Error())
	}

	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return models.Product{}, apperrors.BadRequest("invalid request body: missing field " + validationErrors[0].Field())
		}
		return models.Product{}, apperrors.Internal(err)
	}
	return input.Product(), nil
}
