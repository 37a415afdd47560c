package repositories

import (
	"errors"
	"fmt"

	"shopapi/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by surrogate id.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its surrogate id.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetByProductID retrieves the first product carrying the given business id.
func (r *GORMProductRepository) GetByProductID(productID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.Order("id").First(&product, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ProductID %d: %w", productID, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ProductID %d: %w", productID, err)
	}
	return &product, nil
}

// ExistsByProductID reports whether any product carries the given business id.
func (r *GORMProductRepository) ExistsByProductID(productID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ProductID %d: %w", productID, err)
	}
	return count > 0, nil
}

// Create inserts a new product; the database assigns its ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// Delete removes a product by its surrogate id. The row is gone for good.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return nil
}
