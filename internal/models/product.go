package models

// Product represents a product in the shop catalogue.
//
// ID is the surrogate key assigned by storage. ProductID is the business
// identifier supplied by clients (normally read from a bar code).
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID   int64   `json:"productId" form:"productId" gorm:"column:product_id;index;not null"`
	Name        string  `json:"name" form:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Category    string  `json:"category" form:"category" gorm:"not null" validate:"required"`
	Price       float64 `json:"price" form:"price" gorm:"not null" validate:"gte=0"`
	Quantity    int     `json:"quantity" form:"quantity" gorm:"not null" validate:"gte=0"`
	SKU         string  `json:"sku" form:"sku" gorm:"column:sku;type:varchar(50);not null" validate:"required,max=50"`
	Description string  `json:"description" form:"description" gorm:"not null"`
	Image       []byte  `json:"image" form:"-"`
}

// TableName keeps the table name used by the existing schema.
func (Product) TableName() string {
	return "products_for_api"
}

// ProductPatch carries the optional fields of an edit request.
//
// Zero numbers, nil strings and empty strings mean "leave unchanged". There is
// no way to set Price or Quantity to 0 through a patch.
type ProductPatch struct {
	ProductID   int64   `json:"productId"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Category    *string `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	SKU         *string `json:"sku" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

// ApplyTo overwrites every field of p that the patch sets. Image is never touched.
func (patch ProductPatch) ApplyTo(p *Product) {
	if patch.ProductID != 0 {
		p.ProductID = patch.ProductID
	}
	if set(patch.Description) {
		p.Description = *patch.Description
	}
	if set(patch.SKU) {
		p.SKU = *patch.SKU
	}
	if set(patch.Category) {
		p.Category = *patch.Category
	}
	if patch.Quantity != 0 {
		p.Quantity = patch.Quantity
	}
	if patch.Price != 0 {
		p.Price = patch.Price
	}
	if set(patch.Name) {
		p.Name = *patch.Name
	}
}

func set(s *string) bool {
	return s != nil && *s != ""
}
