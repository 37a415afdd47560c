package services

import (
	"errors"
	"fmt"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventPublisher publishes product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // may be nil
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are published.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger.With().Str("service", "product").Logger(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by its database id.
func (s *ProductService) GetProduct(id *uint) (*models.Product, error) {
	if id == nil {
		return nil, models.ErrMissingID
	}
	return s.find(s.repo.GetByID(*id))
}

// ProductExists reports whether any product uses the given ProductID.
func (s *ProductService) ProductExists(productID int64) (bool, error) {
	return s.repo.ExistsByProductID(productID)
}

// CreateProduct stores a new product built from input. image holds the
// uploaded file contents and may be nil.
func (s *ProductService) CreateProduct(input *models.Product, image []byte) (*models.Product, error) {
	if input.ProductID == 0 {
		return nil, models.ErrProductIDRequired
	}
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	exists, err := s.ProductExists(input.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrProductIDConflict
	}

	product := &models.Product{
		ProductID:   input.ProductID,
		Name:        input.Name,
		SKU:         input.SKU,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Image:       image,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publish(models.EventProductCreated, product)
	return product, nil
}

// DeleteProduct removes a product by its database id.
func (s *ProductService) DeleteProduct(id *uint) error {
	if id == nil {
		return models.ErrMissingID
	}
	product, err := s.find(s.repo.GetByID(*id))
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product.ID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return models.ErrProductNotFound
		}
		return err
	}

	s.publish(models.EventProductDeleted, product)
	return nil
}

// EditProductByDatabaseID applies patch to the product with the given database
// id. A new ProductID is accepted only when it is unchanged, unset, or unused
// by every other product.
func (s *ProductService) EditProductByDatabaseID(id *uint, patch models.ProductPatch) (*models.Product, error) {
	if id == nil {
		return nil, models.ErrMissingID
	}
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	product, err := s.find(s.repo.GetByID(*id))
	if err != nil {
		return nil, err
	}

	if patch.ProductID != 0 && patch.ProductID != product.ProductID {
		taken, err := s.ProductExists(patch.ProductID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrProductIDTaken
		}
	}

	return s.save(product, patch)
}

// EditProductByProductID applies patch to the product with the given
// ProductID. Unlike EditProductByDatabaseID it does not check the new
// ProductID against other products, so two rows may end up sharing one.
func (s *ProductService) EditProductByProductID(productID *int64, patch models.ProductPatch) (*models.Product, error) {
	if productID == nil {
		return nil, models.ErrMissingProductID
	}
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	product, err := s.find(s.repo.GetByProductID(*productID))
	if err != nil {
		return nil, err
	}

	return s.save(product, patch)
}

func (s *ProductService) save(product *models.Product, patch models.ProductPatch) (*models.Product, error) {
	patch.ApplyTo(product)
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, err
	}

	s.publish(models.EventProductEdited, product)
	return product, nil
}

// find maps a repository miss onto the NotFound domain error.
func (s *ProductService) find(product *models.Product, err error) (*models.Product, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

// publish sends a lifecycle event. Failures are logged, never returned: the
// database change has already been committed.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		ProductDBID: product.ID,
		ProductID:   product.ProductID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Uint("id", product.ID).Msg("failed to publish product event")
		return
	}
	s.logger.Debug().Str("event", eventType).Uint("id", product.ID).Msg("published product event")
}
