package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// PartnerUseCase casos de uso CRUD para terceros (clientes y proveedores).
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create crea un tercero. PartnerType debe ser CUSTOMER o SUPPLIER.
func (uc *PartnerUseCase) Create(in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PartnerType != entity.PartnerTypeCustomer && in.PartnerType != entity.PartnerTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Partner{
		ID:          uuid.New().String(),
		Name:        in.Name,
		PartnerType: in.PartnerType,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// GetByID obtiene un tercero por ID.
func (uc *PartnerUseCase) GetByID(id string) (*dto.PartnerResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPartnerResponse(p), nil
}

// List lista terceros, opcionalmente filtrados por tipo.
func (uc *PartnerUseCase) List(partnerType string, limit, offset int) ([]dto.PartnerResponse, error) {
	if partnerType != "" && partnerType != entity.PartnerTypeCustomer && partnerType != entity.PartnerTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(partnerType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return items, nil
}

// Delete elimina un tercero por ID.
func (uc *PartnerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	if p == nil {
		return nil
	}
	return &dto.PartnerResponse{
		ID:          p.ID,
		Name:        p.Name,
		PartnerType: p.PartnerType,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		CreatedAt:   p.CreatedAt,
	}
}
