package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard. Se calcula en cada request.
type DashboardDTO struct {
	Today              TodayMetricsDTO       `json:"today"`
	AllTime            AllTimeMetricsDTO     `json:"allTime"`
	TopSelling         []TopSellingDTO       `json:"topSelling"`
	PaymentBreakdown   []PaymentBreakdownDTO `json:"paymentBreakdown"`
	LowStock           []ProductResponse     `json:"lowStock"`
	SalesByDay         []DailySalesDTO       `json:"salesByDay"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

// TodayMetricsDTO métricas del día en la zona horaria de referencia.
type TodayMetricsDTO struct {
	Transactions int             `json:"transactions"`
	Revenue      decimal.Decimal `json:"revenue"`
	Tax          decimal.Decimal `json:"tax"`
	Profit       decimal.Decimal `json:"profit"` // Σ (precio - costo actual) × cantidad
}

// AllTimeMetricsDTO acumulado histórico.
type AllTimeMetricsDTO struct {
	Transactions int             `json:"transactions"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopSellingDTO producto más vendido hoy (agrupado por nombre).
type TopSellingDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
}

// PaymentBreakdownDTO ventas de hoy por medio de pago.
type PaymentBreakdownDTO struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// DailySalesDTO ventas de un día calendario (YYYY-MM-DD).
type DailySalesDTO struct {
	Day          string          `json:"day"`
	Transactions int             `json:"transactions"`
	Revenue      decimal.Decimal `json:"revenue"`
}
