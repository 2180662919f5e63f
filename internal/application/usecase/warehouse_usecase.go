package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes y sus ubicaciones.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, locationRepo repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, locationRepo: locationRepo}
}

// Create crea un almacén. Code es único a nivel global.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.warehouseRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return toWarehouseResponse(w), nil
}

// List lista almacenes con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.warehouseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza nombre y dirección. El código no cambia.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Address != nil {
		w.Address = *in.Address
	}
	w.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// Delete elimina un almacén por ID.
func (uc *WarehouseUseCase) Delete(id string) error {
	return uc.warehouseRepo.Delete(id)
}

// CreateLocation agrega una ubicación dentro de un almacén existente.
func (uc *WarehouseUseCase) CreateLocation(warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	// El almacén debe existir antes de colgar la ubicación.
	w, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	loc := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Name:        in.Name,
		Code:        in.Code,
		CreatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// ListLocations lista las ubicaciones de un almacén.
func (uc *WarehouseUseCase) ListLocations(warehouseID string) ([]dto.LocationResponse, error) {
	list, err := uc.locationRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		items = append(items, *toLocationResponse(loc))
	}
	return items, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toLocationResponse(loc *entity.Location) *dto.LocationResponse {
	if loc == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:          loc.ID,
		WarehouseID: loc.WarehouseID,
		Name:        loc.Name,
		Code:        loc.Code,
	}
}
