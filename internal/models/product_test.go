package models_test

import (
	"testing"

	"shopapi/internal/models"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func TestProductPatch_ApplyTo(t *testing.T) {
	base := func() models.Product {
		return models.Product{
			ID:          7,
			ProductID:   100,
			Name:        "Widget",
			Category:    "Tools",
			Price:       9.99,
			Quantity:    5,
			SKU:         "W-1",
			Description: "old",
			Image:       []byte{1},
		}
	}

	tests := []struct {
		name  string
		patch models.ProductPatch
		want  func(p *models.Product)
	}{
		{
			name:  "empty patch changes nothing",
			patch: models.ProductPatch{},
			want:  func(p *models.Product) {},
		},
		{
			name:  "zero and empty values are sentinels",
			patch: models.ProductPatch{Name: str(""), SKU: str(""), Category: str(""), Description: str("")},
			want:  func(p *models.Product) {},
		},
		{
			name: "every field set",
			patch: models.ProductPatch{
				ProductID:   200,
				Name:        str("Gadget"),
				Category:    str("Toys"),
				Price:       1.5,
				Quantity:    2,
				SKU:         str("G-1"),
				Description: str("new"),
			},
			want: func(p *models.Product) {
				p.ProductID = 200
				p.Name = "Gadget"
				p.Category = "Toys"
				p.Price = 1.5
				p.Quantity = 2
				p.SKU = "G-1"
				p.Description = "new"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, want := base(), base()
			tt.patch.ApplyTo(&got)
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestDomainError(t *testing.T) {
	err := models.NewDomainError(models.ErrCodeProductNotFound, "Product doesn't exist")
	assert.Equal(t, "Product doesn't exist", err.Error())
	assert.Equal(t, "products_for_api", models.Product{}.TableName())
}
