package repositories

import (
	"errors"

	"shopapi/internal/models"
)

// ErrProductNotFound is returned when no stored product matches a lookup.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByProductID(productID int64) (*models.Product, error)
	ExistsByProductID(productID int64) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
