package dto

import "github.com/shopspring/decimal"

// LowStockProductDTO entrada del widget de stock bajo del dashboard.
type LowStockProductDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
}

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Todas las cifras respetan el alcance de bodega del solicitante;
// total_warehouses es 0 (no omitido) si no tiene warehouse.view.
type DashboardStatsDTO struct {
	TotalProducts    int                  `json:"total_products"`
	TotalWarehouses  int                  `json:"total_warehouses"`
	TotalStockValue  decimal.Decimal      `json:"total_stock_value"`
	LowStockCount    int                  `json:"low_stock_count"`
	OutOfStockCount  int                  `json:"out_of_stock_count"`
	RecentProducts   int                  `json:"recent_products"`
	LowStockProducts []LowStockProductDTO `json:"low_stock_products"`
}

// StockChartItemDTO un grupo del gráfico stock-por-categoría.
type StockChartItemDTO struct {
	Category   string `json:"category"`
	StockCount int    `json:"stock_count"`
}
