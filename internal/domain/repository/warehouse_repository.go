package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para almacenes.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error
}

// LocationRepository define el puerto de persistencia para ubicaciones.
// (warehouse, code) es único; la violación se mapea a domain.ErrDuplicate.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByWarehouse(warehouseID string) ([]*entity.Location, error)
	Delete(id string) error
}
