package repositories

import (
	"fmt"
	"sort"
	"sync"

	"shopapi/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// It backs DB_DRIVER=memory and hands out ids the way an auto-increment column does.
type MemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products in ascending id order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its surrogate id.
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// GetByProductID returns the lowest-id product carrying the business id.
func (r *MemoryProductRepository) GetByProductID(productID int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Product
	for _, p := range r.products {
		if p.ProductID == productID && (found == nil || p.ID < found.ID) {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, fmt.Errorf("product with ProductID %d: %w", productID, ErrProductNotFound)
	}
	return found, nil
}

// ExistsByProductID reports whether any product carries the business id.
func (r *MemoryProductRepository) ExistsByProductID(productID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Create stores a new product and assigns it the next id.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its surrogate id.
func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}
