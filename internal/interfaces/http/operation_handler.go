package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// OperationHandler maneja las peticiones HTTP de documentos de inventario
// (recepciones, entregas, traslados y ajustes) (protegido).
type OperationHandler struct {
	workflow *operation.WorkflowUseCase
	query    *operation.QueryUseCase
	pdf      *operation.PDFUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(workflow *operation.WorkflowUseCase, query *operation.QueryUseCase, pdf *operation.PDFUseCase) *OperationHandler {
	return &OperationHandler{workflow: workflow, query: query, pdf: pdf}
}

// Create godoc
// @Summary      Crear documento de inventario (DRAFT)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "operation_type, ubicaciones según tipo, lines"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]operation.CreateLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, operation.CreateLineInput{
			ProductID:        l.ProductID,
			QuantityDemanded: l.QuantityDemanded,
		})
	}
	op, err := h.workflow.Create(c.Context(), operation.CreateInput{
		OperationType:         in.OperationType,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		PartnerID:             in.PartnerID,
		PartnerName:           in.PartnerName,
		Lines:                 lines,
		CreatedBy:             GetUserID(c),
	})
	if err != nil {
		return operationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(op, nil))
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del documento"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	id, err := operationID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	op, lines, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if op == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(toOperationResponse(op, lines))
}

// List godoc
// @Summary      Listar documentos
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        status  query  string  false  "DRAFT | WAITING | READY | DONE | CANCELED"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.OperationResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.query.List(c.Context(), c.Query("type"), c.Query("status"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		out = append(out, *toOperationResponse(op, nil))
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar documento (mover stock)
// @Description  Único camino que muta stock desde un documento. Con allow_partial,
//
//	las entregas y traslados cumplen lo disponible y el resto queda en 0.
//
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del documento"
// @Param        body  body  dto.ValidateOperationRequest  false  "allow_partial"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/validate [post]
func (h *OperationHandler) Validate(c *fiber.Ctx) error {
	id, err := operationID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ValidateOperationRequest
	// Body opcional: sin body, validación estricta.
	_ = c.BodyParser(&in)

	op, err := h.workflow.Validate(c.Context(), id, GetUserID(c), in.AllowPartial)
	if err != nil {
		return operationError(c, err)
	}
	_, lines, err := h.query.GetByID(c.Context(), op.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOperationResponse(op, lines))
}

// Transition godoc
// @Summary      Cambiar estado del documento (sin efectos de stock)
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del documento"
// @Param        body  body  dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  dto.OperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/status [post]
func (h *OperationHandler) Transition(c *fiber.Ctx) error {
	id, err := operationID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	op, err := h.workflow.Transition(c.Context(), id, in.Status)
	if err != nil {
		return operationError(c, err)
	}
	return c.JSON(toOperationResponse(op, nil))
}

// DownloadPDF godoc
// @Summary      Descargar el PDF de un documento validado
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/pdf [get]
func (h *OperationHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := operationID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	data, filename, err := h.pdf.DownloadOperationPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOperationNotDone) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_DONE", Message: "solo los documentos validados (DONE) tienen PDF"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func operationID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// operationError mapea los errores del motor de documentos a HTTP.
func operationError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
				insufficient.Available.String(), insufficient.Requested.String()),
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento o producto no encontrado"})
	case errors.Is(err, domain.ErrEmptyDocument):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_DOCUMENT", Message: "el documento no tiene líneas"})
	case errors.Is(err, domain.ErrMissingLocation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_LOCATION", Message: "falta la ubicación requerida por el tipo de documento"})
	case errors.Is(err, domain.ErrAlreadyTerminal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_TERMINAL", Message: "el documento ya está en un estado terminal"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "las cantidades deben ser positivas"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toOperationResponse(op *entity.Operation, lines []*entity.OperationLine) *dto.OperationResponse {
	if op == nil {
		return nil
	}
	out := &dto.OperationResponse{
		ID:                    op.ID,
		OperationType:         op.OperationType,
		ReferenceNumber:       op.ReferenceNumber,
		Status:                op.Status,
		SourceLocationID:      op.SourceLocationID,
		DestinationLocationID: op.DestinationLocationID,
		PartnerID:             op.PartnerID,
		PartnerName:           op.PartnerName,
		CreatedBy:             op.CreatedBy,
		CreatedAt:             op.CreatedAt,
		ValidatedAt:           op.ValidatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.OperationLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			QuantityDemanded: l.QuantityDemanded,
			QuantityDone:     l.QuantityDone,
		})
	}
	return out
}
