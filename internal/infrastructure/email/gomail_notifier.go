// Package email implementa el Notifier sobre SMTP usando gomail.
// Es best-effort: el motor de stock invoca las notificaciones fuera de la
// transacción y nunca propaga sus errores.
package email

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

var _ stock.Notifier = (*GomailNotifier)(nil)

// GomailNotifier envía correos de alerta y de traslado completado.
// Si no hay SMTP configurado, cada envío es un no-op silencioso.
type GomailNotifier struct {
	cfg           config.SMTPConfig
	productRepo   repository.ProductRepository
	locationRepo  repository.LocationRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewGomailNotifier construye el notificador.
func NewGomailNotifier(
	cfg config.SMTPConfig,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *GomailNotifier {
	return &GomailNotifier{
		cfg:           cfg,
		productRepo:   productRepo,
		locationRepo:  locationRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// NotifyLowStock envía el correo de alerta de stock bajo.
func (n *GomailNotifier) NotifyLowStock(_ context.Context, alert *entity.LowStockAlert) error {
	if !n.cfg.Enabled() {
		return nil
	}
	recipients := n.cfg.Recipients()
	if len(recipients) == 0 {
		return nil
	}

	product, err := n.productRepo.GetByID(alert.ProductID)
	if err != nil || product == nil {
		return fmt.Errorf("alerta %s: producto %s no disponible: %w", alert.ID, alert.ProductID, err)
	}
	locationLabel := n.locationLabel(alert.LocationID)

	subject := fmt.Sprintf("⚠️ Alerta de Stock Bajo: %s (%s)", product.Name, product.SKU)
	body := fmt.Sprintf(`Alerta de Stock Bajo

Producto: %s
SKU: %s
Ubicación: %s
Cantidad actual: %s %s
Nivel mínimo: %s %s

⚠️ El stock está en o bajo el nivel mínimo. Reordene lo antes posible.

---
StockMaster - Sistema de Gestión de Inventario
`,
		product.Name, product.SKU, locationLabel,
		alert.CurrentQuantity.String(), product.UOM,
		alert.Threshold.String(), product.UOM,
	)

	return n.send(recipients, subject, body)
}

// NotifyTransferCompleted envía el correo de traslado completado.
func (n *GomailNotifier) NotifyTransferCompleted(_ context.Context, op *entity.Operation, lines []*entity.OperationLine) error {
	if !n.cfg.Enabled() {
		return nil
	}
	recipients := n.cfg.Recipients()
	if len(recipients) == 0 {
		return nil
	}

	origen := "—"
	if op.SourceLocationID != nil {
		origen = n.locationLabel(*op.SourceLocationID)
	}
	destino := "—"
	if op.DestinationLocationID != nil {
		destino = n.locationLabel(*op.DestinationLocationID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Traslado Completado: %s\n\n", op.ReferenceNumber)
	fmt.Fprintf(&b, "Origen: %s\nDestino: %s\n\nLíneas:\n", origen, destino)
	for _, l := range lines {
		name := l.ProductID
		if p, err := n.productRepo.GetByID(l.ProductID); err == nil && p != nil {
			name = fmt.Sprintf("%s (%s)", p.Name, p.SKU)
		}
		fmt.Fprintf(&b, "  - %s: %s de %s trasladado\n", name, l.QuantityDone.String(), l.QuantityDemanded.String())
	}
	b.WriteString("\n---\nStockMaster - Sistema de Gestión de Inventario\n")

	subject := "Traslado Completado: " + op.ReferenceNumber
	return n.send(recipients, subject, b.String())
}

func (n *GomailNotifier) send(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	n.log.Debug().Str("subject", subject).Int("recipients", len(to)).Msg("correo enviado")
	return nil
}

// locationLabel "Nombre (Almacén)" si se puede resolver; el ID como último recurso.
func (n *GomailNotifier) locationLabel(locationID string) string {
	loc, err := n.locationRepo.GetByID(locationID)
	if err != nil || loc == nil {
		return locationID
	}
	if w, err := n.warehouseRepo.GetByID(loc.WarehouseID); err == nil && w != nil {
		return fmt.Sprintf("%s (%s)", loc.Name, w.Name)
	}
	return loc.Name
}
