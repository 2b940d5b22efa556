package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invorya/inventario-api/internal/domain/entity"
	"github.com/invorya/inventario-api/internal/domain/stock"
)

func levels(pairs ...[2]int) []*entity.StockLevel {
	out := make([]*entity.StockLevel, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, &entity.StockLevel{AvailableQty: p[0], ReservedQty: p[1]})
	}
	return out
}

func TestSummarize_SumaPorBodega(t *testing.T) {
	s := stock.Summarize(levels([2]int{10, 2}, [2]int{5, 0}))

	assert.Equal(t, 15, s.TotalAvailable)
	assert.Equal(t, 2, s.TotalReserved)
	assert.Equal(t, 13, s.NetAvailable)
}

func TestSummarize_SinNiveles_TotalesEnCero(t *testing.T) {
	assert.Equal(t, stock.Summary{}, stock.Summarize(nil))
	assert.Equal(t, stock.Summary{}, stock.Summarize([]*entity.StockLevel{}))
}

// La sobre-reserva produce un neto negativo; no se recorta a cero.
func TestSummarize_NetoNegativoPorSobreReserva(t *testing.T) {
	s := stock.Summarize(levels([2]int{3, 5}, [2]int{1, 4}))

	assert.Equal(t, 4, s.TotalAvailable)
	assert.Equal(t, 9, s.TotalReserved)
	assert.Equal(t, -5, s.NetAvailable)
}

func TestIsLowStock_IgualdadCuentaComoBajo(t *testing.T) {
	// Escenario: disponible 15 con umbral 12 no es bajo; con umbral 15 sí.
	assert.False(t, stock.IsLowStock(15, 12))
	assert.True(t, stock.IsLowStock(15, 15))
	assert.True(t, stock.IsLowStock(3, 12))
}

// Con disponible cero ambos predicados son verdaderos a la vez.
func TestStockCero_BajoYAgotadoSimultaneos(t *testing.T) {
	assert.True(t, stock.IsLowStock(0, 10))
	assert.True(t, stock.IsOutOfStock(0))
	assert.False(t, stock.IsOutOfStock(1))
}

func TestValue_DisponiblePorCosto(t *testing.T) {
	cost := decimal.RequireFromString("2.50")
	v := stock.Value(levels([2]int{10, 2}, [2]int{4, 0}), cost)

	// 14 unidades disponibles * 2.50; lo reservado no suma valor.
	assert.True(t, v.Equal(decimal.RequireFromString("35.00")), "valor: %s", v)
}

func TestValue_SinNiveles_Cero(t *testing.T) {
	assert.True(t, stock.Value(nil, decimal.RequireFromString("9.99")).IsZero())
}
