package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del libro de stock: movimientos
// directos (sin documento) y consultas de saldos e historial (protegido).
type StockHandler struct {
	ledger *stock.LedgerUseCase
	query  *usecase.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, query *usecase.StockQueryUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock directo
// @Description  INCREASE suma, DECREASE resta (estricto), TRANSFER traslada y
//
//	ADJUSTMENT fija el saldo en la cantidad contada.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, product_id, location_id, quantity"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}

	input := stock.MovementInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Actor:      GetUserID(c),
		Notes:      in.Notes,
	}

	var err error
	switch in.Type {
	case "INCREASE":
		_, err = h.ledger.Increase(c.Context(), input)
	case "DECREASE":
		_, err = h.ledger.Decrease(c.Context(), input)
	case "TRANSFER":
		if in.ToLocationID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to_location_id es requerido para TRANSFER"})
		}
		err = h.ledger.Move(c.Context(), input, in.ToLocationID)
	case "ADJUSTMENT":
		_, err = h.ledger.AdjustAbsolute(c.Context(), input)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser INCREASE, DECREASE, TRANSFER o ADJUSTMENT"})
	}
	if err != nil {
		return stockError(c, err)
	}

	out, err := h.query.GetBalance(in.ProductID, in.LocationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un producto en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  true  "ID del producto"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	if productID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}
	out, err := h.query.GetBalance(productID, locationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Saldos de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/locations/{id} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.query.ListByLocation(c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Saldos de un producto en todas sus ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/products/{id} [get]
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.query.ListByProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial del libro de movimientos
// @Description  Filtrar por product_id, location_id u operation_id (uno de los tres).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "ID del producto"
// @Param        location_id   query  string  false  "ID de la ubicación"
// @Param        operation_id  query  int     false  "ID del documento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	if opID := c.Query("operation_id"); opID != "" {
		id, err := strconv.ParseInt(opID, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operation_id inválido"})
		}
		out, err := h.query.MovementsByOperation(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	if productID := c.Query("product_id"); productID != "" {
		out, err := h.query.MovementsByProduct(productID, limit, offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	if locationID := c.Query("location_id"); locationID != "" {
		out, err := h.query.MovementsByLocation(locationID, limit, offset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere product_id, location_id u operation_id"})
}

// stockError mapea los errores del motor de stock a HTTP.
func stockError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
				insufficient.Available.String(), insufficient.Requested.String()),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos (origen y destino no pueden ser iguales)"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
