package journal

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/application/ledger"
)

// ReplayQuantities reconstruye la cantidad vigente de cada registro de stock
// aplicando los deltas del journal en orden de secuencia. Sirve de auditoría
// contra la base relacional: si un commit se perdió tras anexar el evento, la
// discrepancia aparece aquí. Las transferencias aplican su delta a ambos lados.
func ReplayQuantities(j ledger.Journal) (map[string]decimal.Decimal, error) {
	events, err := j.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal)
	// ReadAll viene más reciente primero; el replay recorre al revés.
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		out[ev.StockID] = ev.Source.After
		if ev.Dest != nil && ev.DestStockID != "" {
			out[ev.DestStockID] = ev.Dest.After
		}
	}
	return out, nil
}
