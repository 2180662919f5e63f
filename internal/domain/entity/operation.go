package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación (documento).
const (
	OperationTypeReceipt    = "RECEIPT"    // recepción de proveedor
	OperationTypeDelivery   = "DELIVERY"   // entrega a cliente
	OperationTypeTransfer   = "TRANSFER"   // traslado interno entre ubicaciones
	OperationTypeAdjustment = "ADJUSTMENT" // ajuste de inventario (conteo)
)

// Estados del ciclo de vida de un documento.
const (
	StatusDraft    = "DRAFT"
	StatusWaiting  = "WAITING"
	StatusReady    = "READY"
	StatusDone     = "DONE"     // terminal
	StatusCanceled = "CANCELED" // terminal
)

// allowedTransitions es la tabla genérica de transiciones de estado.
// La validación de documentos tiene además un atajo propio: puede saltar de
// DRAFT/WAITING/READY directamente a DONE (único camino que mueve stock).
var allowedTransitions = map[string][]string{
	StatusDraft:    {StatusWaiting, StatusCanceled},
	StatusWaiting:  {StatusReady, StatusCanceled},
	StatusReady:    {StatusDone, StatusCanceled},
	StatusDone:     {},
	StatusCanceled: {},
}

// ValidOperationType indica si el tipo de operación es conocido.
func ValidOperationType(t string) bool {
	switch t {
	case OperationTypeReceipt, OperationTypeDelivery, OperationTypeTransfer, OperationTypeAdjustment:
		return true
	}
	return false
}

// IsTerminalStatus indica si el estado es terminal (DONE o CANCELED).
func IsTerminalStatus(status string) bool {
	return status == StatusDone || status == StatusCanceled
}

// CanTransition consulta la tabla genérica de transiciones.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// FormatReference construye el número de referencia de un documento:
// tres primeras letras del tipo en mayúsculas, guion, ID numérico a 6 dígitos.
// Ej: RECEIPT con id 42 -> "REC-000042". Se asigna una sola vez y es inmutable.
func FormatReference(operationType string, id int64) string {
	return fmt.Sprintf("%s-%06d", strings.ToUpper(operationType[:3]), id)
}

// Operation es un documento de inventario (recepción, entrega, traslado o ajuste).
// El ID es numérico porque el número de referencia lo requiere; el resto de
// entidades usa UUID. ReferenceNumber se estampa tras el primer insert
// (persistir, obtener ID, estampar) dentro de la misma transacción.
type Operation struct {
	ID                    int64
	OperationType         string
	ReferenceNumber       string
	Status                string
	SourceLocationID      *string // requerido en DELIVERY y TRANSFER; en ADJUSTMENT es la ubicación contada
	DestinationLocationID *string // requerido en RECEIPT y TRANSFER
	PartnerID             *string
	PartnerName           string // campo libre legado
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ValidatedAt           *time.Time
}

// OperationLine es una línea de producto de un documento.
// QuantityDone solo se escribe en la validación; inicia en 0. Un cumplimiento
// parcial (done < demanded) es un resultado exitoso, no un error.
type OperationLine struct {
	ID               string
	OperationID      int64
	ProductID        string
	QuantityDemanded decimal.Decimal
	QuantityDone     decimal.Decimal
}
