package repository

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para terceros (clientes/proveedores).
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	List(partnerType string, limit, offset int) ([]*entity.Partner, error)
	Update(partner *entity.Partner) error
	Delete(id string) error
}
