package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmarin/posflow-api/internal/application/dto"
	apptransfer "github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP de traslados entre sedes (protegido).
type TransferHandler struct {
	workflow   *apptransfer.WorkflowUseCase
	query      *apptransfer.QueryUseCase
	statistics *apptransfer.StatisticsUseCase
	manifest   *apptransfer.ManifestUseCase
}

// NewTransferHandler construye el handler de traslados.
func NewTransferHandler(
	workflow *apptransfer.WorkflowUseCase,
	query *apptransfer.QueryUseCase,
	statistics *apptransfer.StatisticsUseCase,
	manifest *apptransfer.ManifestUseCase,
) *TransferHandler {
	return &TransferHandler{workflow: workflow, query: query, statistics: statistics, manifest: manifest}
}

// Create godoc
// @Summary      Crear traslado (reserva el stock en origen)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "transfer_type, from_scope, to_scope, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]apptransfer.CreateItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, apptransfer.CreateItemInput{
			InventoryItemID: it.InventoryItemID,
			Quantity:        it.Quantity,
		})
	}
	t, err := h.workflow.Create(c.Context(), apptransfer.CreateInput{
		Actor:        ActorFromCtx(c),
		TransferType: in.TransferType,
		From:         entity.Scope{Type: in.FromScope.Type, ID: in.FromScope.ID},
		To:           entity.Scope{Type: in.ToScope.Type, ID: in.ToScope.ID},
		Items:        items,
		Notes:        in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(apptransfer.ToTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados visibles para el actor
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | shipped | delivered | cancelled"
// @Param        type    query  string  false  "WAREHOUSE_TO_WAREHOUSE | BRANCH_TO_BRANCH"
// @Param        from    query  string  false  "Fecha desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Fecha hasta"
// @Param        limit   query  int     false  "Máximo de resultados"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var in dto.TransferListFilter
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.query.List(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado con sus items
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.query.GetByID(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Complete godoc
// @Summary      Completar traslado (abona el stock en destino y marca delivered)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del traslado"
// @Param        body  body  dto.CompleteTransferRequest false  "notes opcionales"
// @Success      200   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [put]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteTransferRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	t, err := h.workflow.Complete(c.Context(), ActorFromCtx(c), c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(apptransfer.ToTransferResponse(t))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del traslado (approved, shipped, cancelled; solo admin)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del traslado"
// @Param        body  body  dto.UpdateTransferStatusRequest  true  "status destino"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/status [put]
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransferStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.workflow.UpdateStatus(c.Context(), ActorFromCtx(c), c.Params("id"), in.Status, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(apptransfer.ToTransferResponse(t))
}

// Movements godoc
// @Summary      Movimientos de stock generados por un traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/movements [get]
func (h *TransferHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.query.Movements(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movs)
}

// Logs godoc
// @Summary      Log de auditoría de movimientos (restringido a la sede del rol)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "Tipo de movimiento"
// @Param        item_id  query  string  false  "Filtrar por item"
// @Param        from     query  string  false  "Fecha desde"
// @Param        to       query  string  false  "Fecha hasta"
// @Param        limit    query  int     false  "Máximo de resultados"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/transfers/logs [get]
func (h *TransferHandler) Logs(c *fiber.Ctx) error {
	var in dto.MovementLogFilter
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.query.Logs(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas de traslados por estado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferStatisticsResponse
// @Router       /api/transfers/statistics [get]
func (h *TransferHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.statistics.Get(c.Context(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Manifest godoc
// @Summary      Descargar la guía de traslado en PDF
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/manifest [get]
func (h *TransferHandler) Manifest(c *fiber.Ctx) error {
	pdfBytes, err := h.manifest.Generate(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="guia-traslado-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
