package entity

import "time"

// Warehouse representa un almacén físico. Code es único a nivel global.
type Warehouse struct {
	ID        string
	Name      string
	Code      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location representa una ubicación dentro de un almacén (ej. "Rack A", "Estante 1").
// Es la unidad de direccionamiento de stock: todo saldo vive en (producto, ubicación).
// (warehouse, code) es único.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	Code        string
	CreatedAt   time.Time
}
