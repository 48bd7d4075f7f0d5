package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
)

// StockHandler maneja las operaciones del ledger de stock. Cada operación es
// atómica y deja exactamente un evento en el journal (protegido).
type StockHandler struct {
	uc *ledger.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Place godoc
// @Summary      Colocar un lote nuevo en una posición libre
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceStockRequest  true  "Lote y posición destino"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Place(c.UserContext(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener un registro de stock por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del stock"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Read(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Inflow godoc
// @Summary      Registrar entrada de mercadería
// @Description  Suma cantidad al lote. Con unit_price recalcula el costo como promedio ponderado.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.InflowRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/inflow [post]
func (h *StockHandler) Inflow(c *fiber.Ctx) error {
	var in dto.InflowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Inflow(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Outflow godoc
// @Summary      Registrar salida de mercadería
// @Description  Resta cantidad del lote. Si no alcanza, la operación se rechaza completa.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.OutflowRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/outflow [post]
func (h *StockHandler) Outflow(c *fiber.Ctx) error {
	var in dto.OutflowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Outflow(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir cantidad entre dos registros de stock
// @Description  Mueve cantidad del stock origen al destino en una sola transacción con un único evento en el journal.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock origen"
// @Param        body  body  dto.TransferRequest  true  "Destino y cantidad"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(c.UserContext(), c.Params("id"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajustar cantidad con delta firmado
// @Description  Aplica un delta positivo o negativo. Un resultado negativo se rechaza. Los conteos automáticos marcan automated y routine_ref.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.AdjustRequest  true  "Delta y motivo"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Adjust(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Relocate godoc
// @Summary      Reubicar el lote dentro de la misma estantería
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.RelocateRequest  true  "Posición destino"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/relocate [post]
func (h *StockHandler) Relocate(c *fiber.Ctx) error {
	var in dto.RelocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TargetSlotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "target_slot_id es requerido"})
	}
	out, err := h.uc.RelocateWithinRack(c.UserContext(), c.Params("id"), in.TargetSlotID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Migrate godoc
// @Summary      Reubicar el lote cruzando el límite del contenedor
// @Description  Mueve el lote a una posición de otra estantería. El código destino debe ser parseable; el evento queda marcado como cruce de límite.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.MigrateRequest  true  "Posición y código destino"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/migrate [post]
func (h *StockHandler) Migrate(c *fiber.Ctx) error {
	var in dto.MigrateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TargetSlotID == "" || in.NewRackCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "target_slot_id y new_rack_code son requeridos"})
	}
	out, err := h.uc.MigrateAcrossBoundary(c.UserContext(), c.Params("id"), in.TargetSlotID, in.NewRackCode)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar el lote
// @Description  Desactiva el registro, libera su posición y deja un ajuste a cero en el journal.
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID del stock"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.UserContext(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
