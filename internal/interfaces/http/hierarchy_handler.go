package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// HierarchyHandler maneja las peticiones HTTP de la jerarquía física
// sede → depósito → pasillo (protegido).
type HierarchyHandler struct {
	uc *usecase.HierarchyUseCase
}

// NewHierarchyHandler construye el handler.
func NewHierarchyHandler(uc *usecase.HierarchyUseCase) *HierarchyHandler {
	return &HierarchyHandler{uc: uc}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
}

// CreateLocation godoc
// @Summary      Crear sede
// @Tags         hierarchy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la sede"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *HierarchyHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.CreateLocation(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLocation godoc
// @Summary      Obtener sede por ID
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *HierarchyHandler) GetLocation(c *fiber.Ctx) error {
	out, err := h.uc.GetLocation(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListLocations godoc
// @Summary      Listar sedes
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *HierarchyHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(pageFromQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateDepot godoc
// @Summary      Crear depósito
// @Tags         hierarchy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepotRequest  true  "Datos del depósito"
// @Success      201   {object}  dto.DepotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/depots [post]
func (h *HierarchyHandler) CreateDepot(c *fiber.Ctx) error {
	var in dto.CreateDepotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LocationID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id y name son requeridos"})
	}
	out, err := h.uc.CreateDepot(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDepot godoc
// @Summary      Obtener depósito por ID
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del depósito"
// @Success      200  {object}  dto.DepotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/depots/{id} [get]
func (h *HierarchyHandler) GetDepot(c *fiber.Ctx) error {
	out, err := h.uc.GetDepot(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListDepots godoc
// @Summary      Listar depósitos de una sede
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  true  "ID de la sede"
// @Success      200  {object}  dto.DepotListResponse
// @Router       /api/depots [get]
func (h *HierarchyHandler) ListDepots(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es requerido"})
	}
	out, err := h.uc.ListDepots(locationID, pageFromQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateAisle godoc
// @Summary      Crear pasillo
// @Tags         hierarchy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAisleRequest  true  "Datos del pasillo"
// @Success      201   {object}  dto.AisleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/aisles [post]
func (h *HierarchyHandler) CreateAisle(c *fiber.Ctx) error {
	var in dto.CreateAisleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DepotID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "depot_id y name son requeridos"})
	}
	out, err := h.uc.CreateAisle(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetAisle godoc
// @Summary      Obtener pasillo por ID
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pasillo"
// @Success      200  {object}  dto.AisleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aisles/{id} [get]
func (h *HierarchyHandler) GetAisle(c *fiber.Ctx) error {
	out, err := h.uc.GetAisle(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListAisles godoc
// @Summary      Listar pasillos de un depósito
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        depot_id  query  string  true  "ID del depósito"
// @Success      200  {object}  dto.AisleListResponse
// @Router       /api/aisles [get]
func (h *HierarchyHandler) ListAisles(c *fiber.Ctx) error {
	depotID := c.Query("depot_id")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "depot_id es requerido"})
	}
	out, err := h.uc.ListAisles(depotID, pageFromQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
