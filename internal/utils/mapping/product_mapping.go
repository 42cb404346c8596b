package mapping

import (
	"github.com/marioapg/cipher-test/internal/core/domain"
	"github.com/marioapg/cipher-test/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Price:             d.Price,
		CurrencyID:        d.CurrencyID,
		TaxCost:           d.TaxCost,
		ManufacturingCost: d.ManufacturingCost,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		CurrencyID:        m.CurrencyID,
		TaxCost:           m.TaxCost,
		ManufacturingCost: m.ManufacturingCost,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to a slice of domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}

// ToModelProductPrice converts a domain ProductPrice to a model ProductPrice
func ToModelProductPrice(d domain.ProductPrice) models.ProductPrice {
	return models.ProductPrice{
		ID:          d.ID,
		ProductID:   d.ProductID,
		CurrencyID:  d.CurrencyID,
		Price:       d.Price,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProductPrice converts a model ProductPrice to a domain ProductPrice
func ToDomainProductPrice(m models.ProductPrice) domain.ProductPrice {
	return domain.ProductPrice{
		ID:          m.ID,
		ProductID:   m.ProductID,
		CurrencyID:  m.CurrencyID,
		Price:       m.Price,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductPriceSlice converts a slice of model ProductPrices to domain ProductPrices
func ToDomainProductPriceSlice(ms []models.ProductPrice) []domain.ProductPrice {
	ds := make([]domain.ProductPrice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProductPrice(m)
	}
	return ds
}
