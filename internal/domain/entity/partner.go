package entity

import "time"

// Tipos de tercero.
const (
	PartnerTypeCustomer = "CUSTOMER" // cliente
	PartnerTypeSupplier = "SUPPLIER" // proveedor
)

// Partner representa un tercero (cliente o proveedor) asociado a recepciones y entregas.
type Partner struct {
	ID          string
	Name        string
	PartnerType string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
}
