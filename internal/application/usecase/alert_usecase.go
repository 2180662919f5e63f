package usecase

import (
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// AlertUseCase consulta y gestión de alertas de stock bajo. La creación y
// resolución son automáticas (las hace el motor de stock); aquí solo se listan
// y se marcan como leídas.
type AlertUseCase struct {
	repo repository.LowStockAlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.LowStockAlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// ListActive lista las alertas activas (no resueltas).
func (uc *AlertUseCase) ListActive(limit, offset int) ([]dto.AlertResponse, error) {
	list, err := uc.repo.ListActive(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return items, nil
}

// MarkRead marca una alerta como leída (no la resuelve).
func (uc *AlertUseCase) MarkRead(id string) error {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repo.MarkRead(id)
}

func toAlertResponse(a *entity.LowStockAlert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		LocationID:      a.LocationID,
		CurrentQuantity: a.CurrentQuantity,
		Threshold:       a.Threshold,
		IsResolved:      a.IsResolved,
		IsRead:          a.IsRead,
		CreatedAt:       a.CreatedAt,
		ResolvedAt:      a.ResolvedAt,
	}
}
