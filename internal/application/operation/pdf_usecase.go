package operation

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// PDFUseCase genera el documento imprimible de una operación validada.
// Solo se permite para operaciones en DONE: un documento sin validar aún no
// refleja movimientos reales de stock.
type PDFUseCase struct {
	opRepo       repository.OperationRepository
	lineRepo     repository.OperationLineRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	generator    DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	opRepo repository.OperationRepository,
	lineRepo repository.OperationLineRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		opRepo:       opRepo,
		lineRepo:     lineRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		generator:    generator,
	}
}

// DownloadOperationPDF carga la operación con sus líneas enriquecidas y genera
// el PDF. Retorna (bytes, filename, nil), domain.ErrNotFound si no existe o
// domain.ErrOperationNotDone si la operación no está validada.
func (uc *PDFUseCase) DownloadOperationPDF(ctx context.Context, operationID int64) ([]byte, string, error) {
	// ── 1. Cargar documento ───────────────────────────────────────────────────
	op, err := uc.opRepo.GetByID(operationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener operación: %w", err)
	}
	if op == nil {
		return nil, "", domain.ErrNotFound
	}
	if op.Status != entity.StatusDone {
		return nil, "", fmt.Errorf("%w: estado actual %s", domain.ErrOperationNotDone, op.Status)
	}

	// ── 2. Cargar y enriquecer líneas ─────────────────────────────────────────
	lines, err := uc.lineRepo.ListByOperation(op.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfLines := make([]LineForPDF, 0, len(lines))
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
		}
		if product == nil {
			return nil, "", domain.ErrNotFound
		}
		pdfLines = append(pdfLines, LineForPDF{
			ProductName: product.Name,
			SKU:         product.SKU,
			UOM:         product.UOM,
			Demanded:    line.QuantityDemanded.StringFixed(2),
			Done:        line.QuantityDone.StringFixed(2),
		})
	}

	// ── 3. Cargar ubicaciones (si aplican al tipo) ────────────────────────────
	source, err := uc.loadLocation(op.SourceLocationID)
	if err != nil {
		return nil, "", err
	}
	destination, err := uc.loadLocation(op.DestinationLocationID)
	if err != nil {
		return nil, "", err
	}

	// ── 4. Generar ────────────────────────────────────────────────────────────
	pdf, err := uc.generator.GenerateOperationPDF(ctx, op, pdfLines, source, destination)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	filename := fmt.Sprintf("%s.pdf", op.ReferenceNumber)
	return pdf, filename, nil
}

// loadLocation resuelve una ubicación opcional del documento.
func (uc *PDFUseCase) loadLocation(id *string) (*entity.Location, error) {
	if id == nil {
		return nil, nil
	}
	loc, err := uc.locationRepo.GetByID(*id)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener ubicación: %w", err)
	}
	return loc, nil
}
