package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// todo lo que fn persista se confirma o se revierte en bloque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		slotRepo repository.SlotRepository,
		rackRepo repository.RackRepository,
	) error) error
}

// Journal es el log externo de solo-anexado donde queda cada evento del ledger.
// Append asigna secuencia y timestamp y persiste de forma durable; los registros
// nunca se reescriben ni se reordenan. Vive fuera del esquema relacional: un
// DELETE en cascada no puede borrar historia.
type Journal interface {
	Append(event *entity.LedgerEvent) error
	// ReadAll devuelve todos los eventos en orden canónico de auditoría:
	// timestamp descendente y, a igual timestamp, secuencia descendente.
	ReadAll() ([]*entity.LedgerEvent, error)
}
