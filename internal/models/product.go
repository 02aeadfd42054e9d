package models

// Product represents an inventory record.
// ID is nil on create input and always set on records read back from the store.
// Field order matters: validation reports the first failing field in declaration order.
type Product struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name" validate:"notblank"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Stock       int32   `json:"stock" validate:"gte=0"`
}

// WithID returns a copy of p carrying the given identifier.
func (p Product) WithID(id int64) Product {
	p.ID = &id
	return p
}

// ProductInput is the request body for create and update. Every mutable
// field must be present and non-null; a client-sent id is not decoded.
type ProductInput struct {
	Name        *string  `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Stock       *int32   `json:"stock" validate:"required"`
}

// Product converts a complete input into a Product without an ID.
// Callers must validate the input first.
func (in ProductInput) Product() Product {
	return Product{
		Name:        *in.Name,
		Price:       *in.Price,
		Description: *in.Description,
		Stock:       *in.Stock,
	}
}
