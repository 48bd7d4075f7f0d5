package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/layout"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// RackHandler maneja las peticiones HTTP para estanterías: creación con
// aprovisionamiento de grilla, layout, estadísticas y reconfiguración (protegido).
type RackHandler struct {
	uc        *usecase.RackUseCase
	assembler *layout.SlotLayoutAssembler
}

// NewRackHandler construye el handler.
func NewRackHandler(uc *usecase.RackUseCase, assembler *layout.SlotLayoutAssembler) *RackHandler {
	return &RackHandler{uc: uc, assembler: assembler}
}

// Create godoc
// @Summary      Crear estantería y aprovisionar su grilla de posiciones
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRackRequest  true  "Configuración de la estantería"
// @Success      201   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/racks [post]
func (h *RackHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AisleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "aisle_id es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener estantería por ID
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.RackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [get]
func (h *RackHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByAisle godoc
// @Summary      Listar estanterías de un pasillo
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        aisle_id  query  string  true  "ID del pasillo"
// @Success      200  {object}  dto.RackListResponse
// @Router       /api/racks [get]
func (h *RackHandler) ListByAisle(c *fiber.Ctx) error {
	aisleID := c.Query("aisle_id")
	if aisleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "aisle_id es requerido"})
	}
	out, err := h.uc.ListByAisle(aisleID, pageFromQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Reconfigure godoc
// @Summary      Reconfigurar estantería (solo crecimiento)
// @Description  Amplía niveles, cuerpos o posiciones y completa la grilla. Reducir dimensiones o pasar de doble a simple se rechaza.
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la estantería"
// @Param        body  body  dto.CreateRackRequest  true  "Nueva configuración"
// @Success      200   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [put]
func (h *RackHandler) Reconfigure(c *fiber.Ctx) error {
	var in dto.CreateRackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reconfigure(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Layout godoc
// @Summary      Grilla completa de la estantería
// @Description  Posiciones en orden de lectura de estante con coordenadas sintetizadas desde el código vigente y la ocupación de cada una.
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.RackLayoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id}/layout [get]
func (h *RackHandler) Layout(c *fiber.Ctx) error {
	out, err := h.assembler.GetLayout(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Ocupación agregada de la estantería
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.RackStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id}/stats [get]
func (h *RackHandler) Stats(c *fiber.Ctx) error {
	out, err := h.assembler.GetStats(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
