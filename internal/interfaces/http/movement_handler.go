package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/journal"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/pdf"
)

// MovementHandler expone el journal de movimientos: consulta filtrada y
// reporte PDF (protegido).
type MovementHandler struct {
	uc     *journal.QueryUseCase
	report *pdf.MovementsReportGenerator
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *journal.QueryUseCase, report *pdf.MovementsReportGenerator) *MovementHandler {
	return &MovementHandler{uc: uc, report: report}
}

func movementQueryFromCtx(c *fiber.Ctx) dto.MovementQueryRequest {
	in := dto.MovementQueryRequest{
		Window:    c.Query("window"),
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		SlotID:    c.Query("slot_id"),
		Search:    c.Query("search"),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}
	switch c.Query("automated") {
	case "true":
		v := true
		in.Automated = &v
	case "false":
		v := false
		in.Automated = &v
	}
	return in
}

// List godoc
// @Summary      Consultar movimientos del journal
// @Description  Orden canónico de auditoría: fecha descendente y, a igual fecha, secuencia descendente. Filtros combinables.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        automated   query  bool    false  "Solo movimientos automáticos (o manuales con false)"
// @Param        window      query  string  false  "Ventana de fecha"  Enums(today, week, month)
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo de evento"
// @Param        slot_id     query  string  false  "Filtrar por posición origen o destino"
// @Param        search      query  string  false  "Búsqueda en notas y referencias, sin distinguir tildes"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), movementQueryFromCtx(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de movimientos
// @Description  Genera un PDF con los movimientos que matchean los mismos filtros que el listado.
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        automated   query  bool    false  "Solo movimientos automáticos (o manuales con false)"
// @Param        window      query  string  false  "Ventana de fecha"  Enums(today, week, month)
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo de evento"
// @Param        slot_id     query  string  false  "Filtrar por posición origen o destino"
// @Param        search      query  string  false  "Búsqueda en notas y referencias"
// @Success      200  {file}  binary
// @Router       /api/movements/report [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	in := movementQueryFromCtx(c)
	// El reporte no pagina: toma hasta el tope de página más alto permitido.
	in.Limit = 100
	in.Offset = 0
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	doc, err := h.report.Generate(c.UserContext(), "Movimientos de almacén", out.Items)
	if err != nil {
		return respondDomainError(c, err)
	}
	filename := fmt.Sprintf("movimientos-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
