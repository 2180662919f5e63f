package operation

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de documentos y los del motor de stock: la validación de un
// documento muta stock línea a línea dentro de UNA sola transacción.
type TxRunner interface {
	RunOperation(ctx context.Context, fn func(
		opRepo repository.OperationRepository,
		lineRepo repository.OperationLineRepository,
		stockRepo repository.ProductStockRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// DocumentPDFGenerator genera la representación imprimible de un documento
// validado (DONE). Las líneas llegan enriquecidas con los datos del producto.
type DocumentPDFGenerator interface {
	GenerateOperationPDF(
		ctx context.Context,
		op *entity.Operation,
		lines []LineForPDF,
		source, destination *entity.Location,
	) ([]byte, error)
}

// LineForPDF es una línea de documento enriquecida para el render.
type LineForPDF struct {
	ProductName string
	SKU         string
	UOM         string
	Demanded    string
	Done        string
}
