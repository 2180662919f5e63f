package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos del catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre o SKU normalizado (sin acentos, case-insensitive).
	Search(normalizedQuery string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
