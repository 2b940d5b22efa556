// Package stock contiene la aritmética pura de agregación de inventario.
// Opera sobre los StockLevel ya filtrados por el alcance de bodega del
// llamador; aquí no hay acceso a datos ni efectos secundarios.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// Summary agrega las cantidades de un producto a través de sus bodegas visibles.
type Summary struct {
	TotalAvailable int
	TotalReserved  int
	// NetAvailable = TotalAvailable - TotalReserved. Puede ser negativo si hay
	// sobre-reserva; se expone tal cual, sin recortar a cero.
	NetAvailable int
}

// Summarize suma las cantidades de los niveles de stock recibidos.
// Un slice vacío o nil produce totales en cero.
func Summarize(levels []*entity.StockLevel) Summary {
	var s Summary
	for _, lvl := range levels {
		s.TotalAvailable += lvl.AvailableQty
		s.TotalReserved += lvl.ReservedQty
	}
	s.NetAvailable = s.TotalAvailable - s.TotalReserved
	return s
}

// IsLowStock indica si el disponible está en o por debajo del umbral de
// reposición. La igualdad cuenta como stock bajo.
func IsLowStock(totalAvailable, reorderLevel int) bool {
	return totalAvailable <= reorderLevel
}

// IsOutOfStock indica si no hay disponible. No es excluyente con IsLowStock:
// un producto con disponible cero es a la vez "bajo" y "agotado".
func IsOutOfStock(totalAvailable int) bool {
	return totalAvailable == 0
}

// Value calcula el valor del inventario disponible a costo:
// sum(available_qty) * cost_price, sin redondear (el llamador decide).
func Value(levels []*entity.StockLevel, costPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, lvl := range levels {
		total = total.Add(costPrice.Mul(decimal.NewFromInt(int64(lvl.AvailableQty))))
	}
	return total
}
