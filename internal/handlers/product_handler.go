package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// imageField is the multipart field carrying the product image.
const imageField = "imageFile"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	responder
}

// NewProductHandler creates a new ProductHandler. With exposeDetails set,
// internal errors are returned to the caller as a text summary.
func NewProductHandler(service *services.ProductService, logger zerolog.Logger, exposeDetails bool) *ProductHandler {
	return &ProductHandler{
		service: service,
		responder: responder{
			logger:        logger.With().Str("handler", "product").Logger(),
			exposeDetails: exposeDetails,
		},
	}
}

// RegisterRoutes registers the product routes under /Product. guards run
// before every route that changes data.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	productRoutes := router.Group("/Product")
	productRoutes.Get("/", h.HandleIndex)
	productRoutes.Get("/GetAll", h.HandleGetAll)
	productRoutes.Get("/GetOne", h.HandleGetOne)
	productRoutes.Get("/Ui", h.HandleUi)
	productRoutes.Post("/AddNewProduct", guarded(guards, h.HandleCreate)...)
	productRoutes.Delete("/DeleteOne/:id", guarded(guards, h.HandleDeleteOne)...)
	productRoutes.Put("/EditOneByDatabaseId/:id", guarded(guards, h.HandleEditByDatabaseID)...)
	productRoutes.Put("/EditOneByProductId/:productId", guarded(guards, h.HandleEditByProductID)...)
}

func guarded(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, guards...), handler)
}

// HandleIndex confirms the API is reachable.
func (h *ProductHandler) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "API end points are working"})
}

// HandleGetAll returns every stored product.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.fail(c, "Product/GetAll", err)
	}
	return c.JSON(products)
}

// HandleGetOne returns the product whose database id is given in ?id=.
func (h *ProductHandler) HandleGetOne(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(parseID(c.Query("id")))
	if err != nil {
		return h.fail(c, "Product/GetOne", err)
	}
	return c.JSON(product)
}

// HandleUi renders the product list as an HTML page.
func (h *ProductHandler) HandleUi(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.fail(c, "Product/Ui", err)
	}
	return c.Render("ui", fiber.Map{
		"Title":    "Products",
		"Products": products,
	})
}

// HandleCreate creates a product from a JSON or multipart body. A multipart
// body may carry the product image in the imageFile field.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input models.Product
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c, err)
	}

	image, err := readImage(c)
	if err != nil {
		return h.badBody(c, err)
	}

	product, err := h.service.CreateProduct(&input, image)
	if err != nil {
		return h.fail(c, "Product/Add", err)
	}

	h.logger.Info().Uint("id", product.ID).Int64("product_id", product.ProductID).Msg("product created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product has been created"})
}

// HandleDeleteOne removes the product with the given database id.
func (h *ProductHandler) HandleDeleteOne(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(parseID(c.Params("id"))); err != nil {
		return h.fail(c, "Product/Delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleEditByDatabaseID patches the product with the given database id.
func (h *ProductHandler) HandleEditByDatabaseID(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.badBody(c, err)
	}

	if _, err := h.service.EditProductByDatabaseID(parseID(c.Params("id")), patch); err != nil {
		return h.fail(c, "Product/EditOneByDatabaseId", err)
	}
	return c.JSON(fiber.Map{"message": "Product has been edited"})
}

// HandleEditByProductID patches the product with the given ProductID.
func (h *ProductHandler) HandleEditByProductID(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.badBody(c, err)
	}

	if _, err := h.service.EditProductByProductID(parseProductID(c.Params("productId")), patch); err != nil {
		return h.fail(c, "Product/EditOneByProductId", err)
	}
	return c.JSON(fiber.Map{"message": "Product has been edited"})
}

// readImage loads the uploaded image into memory. It returns nil when the
// request is not multipart or carries no file.
func readImage(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("failed to read multipart form: %w", err)
	}
	files := form.File[imageField]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", imageField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", imageField, err)
	}
	return data, nil
}

// parseID returns nil for a missing or malformed id.
func parseID(raw string) *uint {
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil
	}
	id := uint(n)
	return &id
}

// parseProductID returns nil for a missing or malformed ProductID.
func parseProductID(raw string) *int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
