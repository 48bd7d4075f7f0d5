package journal

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Ventanas de fecha aceptadas por la consulta de movimientos.
const (
	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// QueryUseCase consulta de solo lectura sobre el journal: filtra y pagina en
// memoria sobre el orden canónico de auditoría. La corrección nunca depende de
// la base relacional; los datos de producto se enriquecen best-effort.
type QueryUseCase struct {
	journal     ledger.Journal
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(journal ledger.Journal, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{journal: journal, productRepo: productRepo}
}

// List aplica los filtros (automatizado/manual, ventana de fecha, producto,
// tipo de evento, pertenencia a posición, texto libre) y pagina el resultado.
// La búsqueda de texto es insensible a mayúsculas y acentos.
func (uc *QueryUseCase) List(ctx context.Context, in dto.MovementQueryRequest) (*dto.MovementListResponse, error) {
	events, err := uc.journal.ReadAll()
	if err != nil {
		return nil, err
	}

	var since time.Time
	now := time.Now()
	switch in.Window {
	case WindowToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case WindowWeek:
		since = now.AddDate(0, 0, -7)
	case WindowMonth:
		since = now.AddDate(0, -1, 0)
	}
	needle := foldText(in.Search)

	var filtered []*entity.LedgerEvent
	for _, ev := range events {
		if in.Automated != nil && ev.Automated != *in.Automated {
			continue
		}
		if !since.IsZero() && ev.CreatedAt.Before(since) {
			continue
		}
		if in.ProductID != "" && ev.ProductID != in.ProductID {
			continue
		}
		if in.Type != "" && ev.Type != in.Type {
			continue
		}
		if in.SlotID != "" && ev.FromSlotID != in.SlotID && ev.ToSlotID != in.SlotID {
			continue
		}
		if needle != "" && !matchesText(ev, needle) {
			continue
		}
		filtered = append(filtered, ev)
	}

	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()
	total := len(filtered)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	products := uc.lookupProducts(filtered[start:end])
	items := make([]dto.MovementDTO, 0, end-start)
	for _, ev := range filtered[start:end] {
		items = append(items, toMovementDTO(ev, products[ev.ProductID]))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// lookupProducts resuelve nombres/SKU de producto para la página visible.
// Cualquier fallo relacional deja el campo vacío: el journal sigue siendo la
// fuente de verdad del movimiento.
func (uc *QueryUseCase) lookupProducts(events []*entity.LedgerEvent) map[string]*entity.Product {
	out := make(map[string]*entity.Product)
	for _, ev := range events {
		if _, seen := out[ev.ProductID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(ev.ProductID)
		if err != nil {
			continue
		}
		out[ev.ProductID] = product
	}
	return out
}

func matchesText(ev *entity.LedgerEvent, needle string) bool {
	for _, field := range []string{ev.Note, ev.SourceRef, ev.ClientRef, ev.RoutineRef} {
		if strings.Contains(foldText(field), needle) {
			return true
		}
	}
	return false
}

// foldText normaliza para búsqueda: minúsculas y sin marcas diacríticas
// ("Camión" y "camion" deben coincidir).
func foldText(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func toMovementDTO(ev *entity.LedgerEvent, product *entity.Product) dto.MovementDTO {
	m := dto.MovementDTO{
		ID:            ev.ID,
		Seq:           ev.Seq,
		Type:          ev.Type,
		StockID:       ev.StockID,
		DestStockID:   ev.DestStockID,
		ProductID:     ev.ProductID,
		FromSlotID:    ev.FromSlotID,
		ToSlotID:      ev.ToSlotID,
		Quantity:      ev.Quantity,
		Before:        ev.Source.Before,
		After:         ev.Source.After,
		TotalValue:    ev.TotalValue,
		CrossBoundary: ev.CrossBoundary,
		Automated:     ev.Automated,
		RoutineRef:    ev.RoutineRef,
		SourceRef:     ev.SourceRef,
		ClientRef:     ev.ClientRef,
		Note:          ev.Note,
		CreatedAt:     ev.CreatedAt,
	}
	if ev.Dest != nil {
		destBefore, destAfter := ev.Dest.Before, ev.Dest.After
		m.DestBefore, m.DestAfter = &destBefore, &destAfter
	}
	if product != nil {
		m.ProductName = product.Name
		m.ProductSKU = product.SKU
	}
	return m
}
