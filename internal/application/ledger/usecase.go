package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain/rack"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StockLedgerUseCase es el núcleo de invariantes del stock: toda mutación de
// cantidad o ubicación corre como una unidad de trabajo atómica —bloquear
// fila(s) (SELECT FOR UPDATE), validar, mutar, anexar exactamente un evento
// al journal— y hace Commit o Rollback completo. Ninguna operación fallida
// deja evento ni estado parcial.
type StockLedgerUseCase struct {
	txRunner    TxRunner
	journal     Journal
	stockRepo   repository.StockRepository // atado al pool, solo lecturas sin lock
	productRepo repository.ProductRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	journal Journal,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:    txRunner,
		journal:     journal,
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// Place coloca por primera vez un lote de producto en una posición libre.
// Bloquea la fila de la posición, verifica que no haya registro activo ocupándola
// y crea el Stock junto con su evento INFLOW con snapshot before=0.
func (uc *StockLedgerUseCase) Place(ctx context.Context, in dto.PlaceStockRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidStrategy(in.Strategy) || !entity.ValidProductType(in.ProductType) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	salePrice := product.SalePrice
	if in.SalePrice != nil {
		salePrice = *in.SalePrice
	}
	costPrice := product.CostPrice
	if in.CostPrice != nil {
		costPrice = *in.CostPrice
	}

	now := time.Now()
	var stock *entity.Stock

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		slotRepo repository.SlotRepository,
		rackRepo repository.RackRepository,
	) error {
		// Bloquea la fila de la posición: dos Place concurrentes sobre el mismo
		// slot serializan aquí.
		slot, err := slotRepo.GetForUpdate(in.SlotID)
		if err != nil {
			return err
		}
		if slot == nil || slot.RackID != in.RackID {
			return domain.ErrNotFound
		}
		occupant, err := stockRepo.GetActiveBySlot(slot.ID)
		if err != nil {
			return err
		}
		if occupant != nil {
			return domain.ErrSlotOccupied
		}
		rk, err := rackRepo.GetByID(slot.RackID)
		if err != nil {
			return err
		}
		if rk == nil {
			return domain.ErrNotFound
		}

		slotID := slot.ID
		stock = &entity.Stock{
			ID:          uuid.New().String(),
			SlotID:      &slotID,
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			Batch:       in.Batch,
			Expiry:      in.Expiry,
			Strategy:    in.Strategy,
			ProductType: in.ProductType,
			Consumable:  in.Consumable,
			SalePrice:   salePrice,
			CostPrice:   costPrice,
			Coordinate:  rack.Coordinate(rk.Code, slot.Direction, slot.Bay, slot.Level, slot.Bin),
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeInflow,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			ToSlotID:   slot.ID,
			Quantity:   in.Quantity,
			Source:     entity.Snapshot{Before: decimal.Zero, After: in.Quantity},
			TotalValue: in.Quantity.Mul(costPrice),
			Note:       "colocación inicial",
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// Inflow suma cantidad a un registro existente bajo bloqueo de fila y anexa
// el evento INFLOW con ambos snapshots.
func (uc *StockLedgerUseCase) Inflow(ctx context.Context, stockID string, in dto.InflowRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		before := stock.Quantity
		stock.Quantity = before.Add(in.Quantity)
		if in.UnitPrice != nil {
			// Costo promedio ponderado con el precio de esta entrada.
			stock.CostPrice = inventory.CostCalculator(before, stock.CostPrice, in.Quantity, *in.UnitPrice)
		}
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(stock); err != nil {
			return err
		}
		result = stock
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeInflow,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			ToSlotID:   slotRef(stock),
			Quantity:   in.Quantity,
			Source:     entity.Snapshot{Before: before, After: stock.Quantity},
			TotalValue: totalValue(in.Quantity, in.UnitPrice),
			SourceRef:  in.SourceRef,
			Note:       in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// Outflow resta cantidad bajo bloqueo de fila. Si el resultado quedaría
// negativo falla con ErrInsufficientStock sin efecto parcial alguno.
func (uc *StockLedgerUseCase) Outflow(ctx context.Context, stockID string, in dto.OutflowRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		before := stock.Quantity
		after := before.Sub(in.Quantity)
		if after.IsNegative() {
			return domain.ErrInsufficientStock
		}
		stock.Quantity = after
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(stock); err != nil {
			return err
		}
		result = stock
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeOutflow,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			FromSlotID: slotRef(stock),
			Quantity:   in.Quantity.Neg(),
			Source:     entity.Snapshot{Before: before, After: after},
			TotalValue: totalValue(in.Quantity, in.UnitPrice),
			ClientRef:  in.ClientRef,
			Note:       in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// Transfer mueve cantidad entre dos registros de stock. Bloquea ambas filas
// en orden ascendente de identificador —transferencias opuestas concurrentes
// adquieren los locks en el mismo orden y no pueden abrazarse— y anexa un
// único evento TRANSFER con los cuatro snapshots.
func (uc *StockLedgerUseCase) Transfer(ctx context.Context, fromStockID string, in dto.TransferRequest) error {
	if !in.Quantity.GreaterThan(decimal.Zero) || fromStockID == in.ToStockID || in.ToStockID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		first, second := fromStockID, in.ToStockID
		if second < first {
			first, second = second, first
		}
		a, err := lockActive(stockRepo, first)
		if err != nil {
			return err
		}
		b, err := lockActive(stockRepo, second)
		if err != nil {
			return err
		}
		src, dst := a, b
		if src.ID != fromStockID {
			src, dst = b, a
		}

		srcBefore, dstBefore := src.Quantity, dst.Quantity
		srcAfter := srcBefore.Sub(in.Quantity)
		if srcAfter.IsNegative() {
			return domain.ErrInsufficientStock
		}
		dstAfter := dstBefore.Add(in.Quantity)

		now := time.Now()
		src.Quantity, src.UpdatedAt = srcAfter, now
		dst.Quantity, dst.UpdatedAt = dstAfter, now
		if err := stockRepo.Update(src); err != nil {
			return err
		}
		if err := stockRepo.Update(dst); err != nil {
			return err
		}
		return uc.journal.Append(&entity.LedgerEvent{
			Type:        entity.EventTypeTransfer,
			StockID:     src.ID,
			DestStockID: dst.ID,
			ProductID:   src.ProductID,
			FromSlotID:  slotRef(src),
			ToSlotID:    slotRef(dst),
			Quantity:    in.Quantity,
			Source:      entity.Snapshot{Before: srcBefore, After: srcAfter},
			Dest:        &entity.Snapshot{Before: dstBefore, After: dstAfter},
			TotalValue:  in.Quantity.Mul(src.CostPrice),
			Note:        in.Note,
		})
	})
}

// Adjust aplica un delta con signo distinto de cero. Un resultado negativo
// falla con ErrNegativeResult. El evento puede marcarse como automatizado
// con referencia a la rutina que lo originó.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, stockID string, in dto.AdjustRequest) (*dto.StockResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		before := stock.Quantity
		after := before.Add(in.Delta)
		if after.IsNegative() {
			return domain.ErrNegativeResult
		}
		stock.Quantity = after
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(stock); err != nil {
			return err
		}
		result = stock
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeAdjustment,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			FromSlotID: slotRef(stock),
			Quantity:   in.Delta,
			Source:     entity.Snapshot{Before: before, After: after},
			TotalValue: totalValue(in.Delta, in.UnitPrice),
			Automated:  in.Automated,
			RoutineRef: in.RoutineRef,
			Note:       in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// RelocateWithinRack mueve un registro a otra posición de la misma estantería.
// Bloquea la fila de stock y la de la posición destino, recalcula la coordenada
// desde el código vigente y anexa un evento RELOCATION con delta cero.
func (uc *StockLedgerUseCase) RelocateWithinRack(ctx context.Context, stockID, targetSlotID string) (*dto.StockResponse, error) {
	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		slotRepo repository.SlotRepository,
		rackRepo repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		if stock.SlotID == nil {
			return domain.ErrNotFound
		}
		current, err := slotRepo.GetByID(*stock.SlotID)
		if err != nil {
			return err
		}
		target, err := slotRepo.GetForUpdate(targetSlotID)
		if err != nil {
			return err
		}
		// Misma estantería: un destino de otra estantería es mismatch de parentesco.
		if current == nil || target == nil || current.RackID != target.RackID {
			return domain.ErrNotFound
		}
		occupant, err := stockRepo.GetActiveBySlot(target.ID)
		if err != nil {
			return err
		}
		if occupant != nil {
			return domain.ErrTargetOccupied
		}
		rk, err := rackRepo.GetByID(target.RackID)
		if err != nil {
			return err
		}
		if rk == nil {
			return domain.ErrNotFound
		}

		fromSlotID := *stock.SlotID
		targetID := target.ID
		stock.SlotID = &targetID
		stock.Coordinate = rack.Coordinate(rk.Code, target.Direction, target.Bay, target.Level, target.Bin)
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(stock); err != nil {
			return err
		}
		result = stock
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeRelocation,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			FromSlotID: fromSlotID,
			ToSlotID:   target.ID,
			Quantity:   decimal.Zero,
			Source:     entity.Snapshot{Before: stock.Quantity, After: stock.Quantity},
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// MigrateAcrossBoundary reubica un registro cruzando el límite del contenedor:
// la coordenada destino se compone con el código de estantería que aporta el
// caller (validado contra la gramática) y el evento queda marcado como cruce.
func (uc *StockLedgerUseCase) MigrateAcrossBoundary(ctx context.Context, stockID, targetSlotID, newRackCode string) (*dto.StockResponse, error) {
	if _, err := rack.Decode(newRackCode); err != nil {
		return nil, err
	}
	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		slotRepo repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		target, err := slotRepo.GetForUpdate(targetSlotID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		occupant, err := stockRepo.GetActiveBySlot(target.ID)
		if err != nil {
			return err
		}
		if occupant != nil {
			return domain.ErrTargetOccupied
		}

		var fromSlotID string
		if stock.SlotID != nil {
			fromSlotID = *stock.SlotID
		}
		targetID := target.ID
		stock.SlotID = &targetID
		stock.Coordinate = rack.Coordinate(newRackCode, target.Direction, target.Bay, target.Level, target.Bin)
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(stock); err != nil {
			return err
		}
		result = stock
		return uc.journal.Append(&entity.LedgerEvent{
			Type:          entity.EventTypeRelocation,
			StockID:       stock.ID,
			ProductID:     stock.ProductID,
			FromSlotID:    fromSlotID,
			ToSlotID:      target.ID,
			Quantity:      decimal.Zero,
			Source:        entity.Snapshot{Before: stock.Quantity, After: stock.Quantity},
			CrossBoundary: true,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// Discard desactiva un registro de stock y libera su posición. La historia ya
// anexada en el journal se conserva siempre; el cierre queda registrado como
// un ADJUSTMENT que lleva la cantidad a cero.
func (uc *StockLedgerUseCase) Discard(ctx context.Context, stockID string) error {
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.SlotRepository,
		_ repository.RackRepository,
	) error {
		stock, err := lockActive(stockRepo, stockID)
		if err != nil {
			return err
		}
		before := stock.Quantity
		if err := stockRepo.Deactivate(stock.ID); err != nil {
			return err
		}
		return uc.journal.Append(&entity.LedgerEvent{
			Type:       entity.EventTypeAdjustment,
			StockID:    stock.ID,
			ProductID:  stock.ProductID,
			FromSlotID: slotRef(stock),
			Quantity:   before.Neg(),
			Source:     entity.Snapshot{Before: before, After: decimal.Zero},
			Note:       "descarte de stock",
		})
	})
}

// Read consulta puntual de un registro, sin bloqueo.
func (uc *StockLedgerUseCase) Read(ctx context.Context, stockID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// lockActive bloquea la fila y exige que exista y esté activa.
func lockActive(stockRepo repository.StockRepository, stockID string) (*entity.Stock, error) {
	stock, err := stockRepo.GetForUpdate(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil || !stock.Active {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

func slotRef(stock *entity.Stock) string {
	if stock.SlotID == nil {
		return ""
	}
	return *stock.SlotID
}

func totalValue(qty decimal.Decimal, unitPrice *decimal.Decimal) decimal.Decimal {
	if unitPrice == nil {
		return decimal.Zero
	}
	return qty.Mul(*unitPrice)
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:          s.ID,
		SlotID:      s.SlotID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		Batch:       s.Batch,
		Expiry:      s.Expiry,
		Strategy:    s.Strategy,
		ProductType: s.ProductType,
		Consumable:  s.Consumable,
		SalePrice:   s.SalePrice,
		CostPrice:   s.CostPrice,
		Coordinate:  s.Coordinate,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
