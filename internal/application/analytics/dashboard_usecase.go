// Package analytics contiene el agregador del dashboard del punto de venta.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/domain/catalog"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/pricing"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

const (
	dashboardTopSelling = 5 // productos en el widget "más vendidos"
	salesWindowDays     = 7 // hoy y los 6 días anteriores
)

// Config parámetros del dashboard.
type Config struct {
	Location          *time.Location // zona horaria de referencia para "hoy"; nil = UTC
	LowStockThreshold int            // stock < umbral
	RecentLimit       int            // ventas recientes a mostrar
}

// DashboardUseCase calcula el dashboard en cada request, sin caché.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	cfg         Config
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, txRepo repository.TransactionRepository, cfg Config) *DashboardUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 20
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	return &DashboardUseCase{productRepo: productRepo, txRepo: txRepo, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetDashboard construye el DashboardDTO.
//
// Cinco lecturas en paralelo:
//  1. ListBetween(hace 6 días, mañana) → hoy + ventas por día
//  2. Totals                           → acumulado histórico
//  3. ListLowStock                     → alertas de stock
//  4. ListRecent                       → últimas ventas
//  5. List(catálogo)                   → costo actual para la utilidad
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	// ── Rangos de fecha en la zona de referencia ──────────────────────────────
	now := uc.now().In(uc.cfg.Location)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.cfg.Location)
	tomorrow := todayStart.AddDate(0, 0, 1)
	windowStart := todayStart.AddDate(0, 0, -(salesWindowDays - 1))

	type txsResult struct {
		list []*entity.Transaction
		err  error
	}
	type totalsResult struct {
		totals repository.LedgerTotals
		err    error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}

	windowCh := make(chan txsResult, 1)
	totalsCh := make(chan totalsResult, 1)
	lowCh := make(chan productsResult, 1)
	recentCh := make(chan txsResult, 1)
	catalogCh := make(chan productsResult, 1)

	go func() {
		list, err := uc.txRepo.ListBetween(ctx, windowStart, tomorrow)
		windowCh <- txsResult{list, err}
	}()
	go func() {
		totals, err := uc.txRepo.Totals(ctx)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		list, err := uc.productRepo.ListLowStock(ctx, uc.cfg.LowStockThreshold)
		lowCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.txRepo.ListRecent(ctx, uc.cfg.RecentLimit)
		recentCh <- txsResult{list, err}
	}()
	go func() {
		list, err := uc.productRepo.List(ctx, catalog.Filter{})
		catalogCh <- productsResult{list, err}
	}()

	window := <-windowCh
	totals := <-totalsCh
	low := <-lowCh
	recent := <-recentCh
	products := <-catalogCh

	if window.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de la semana: %w", window.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: catálogo: %w", products.err)
	}

	costs := make(map[int64]decimal.Decimal, len(products.list))
	for _, p := range products.list {
		costs[p.ID] = p.Cost
	}

	today := make([]*entity.Transaction, 0, len(window.list))
	for _, t := range window.list {
		if !t.Date.Before(todayStart) {
			today = append(today, t)
		}
	}

	allTime := dto.AllTimeMetricsDTO{
		Transactions: totals.totals.Count,
		Revenue:      pricing.Round2(totals.totals.Revenue),
	}

	return &dto.DashboardDTO{
		Today:              todayMetrics(today, costs),
		AllTime:            allTime,
		TopSelling:         topSelling(today, dashboardTopSelling),
		PaymentBreakdown:   paymentBreakdown(today),
		LowStock:           dto.NewProductList(low.list),
		SalesByDay:         salesByDay(window.list, uc.cfg.Location),
		RecentTransactions: dto.NewTransactionList(recent.list),
	}, nil
}

// todayMetrics: la utilidad usa el costo ACTUAL del producto (0 si ya no existe).
func todayMetrics(today []*entity.Transaction, costs map[int64]decimal.Decimal) dto.TodayMetricsDTO {
	revenue, tax, profit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range today {
		revenue = revenue.Add(t.GrandTotal)
		tax = tax.Add(t.TaxTotal)
		for _, it := range t.Items {
			margin := it.UnitPrice.Sub(costs[it.ProductID])
			profit = profit.Add(margin.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return dto.TodayMetricsDTO{
		Transactions: len(today),
		Revenue:      pricing.Round2(revenue),
		Tax:          pricing.Round2(tax),
		Profit:       pricing.Round2(profit),
	}
}

// topSelling agrupa por nombre (como lo ve el cajero) y ordena por cantidad;
// los empates conservan el orden de primera aparición.
func topSelling(today []*entity.Transaction, limit int) []dto.TopSellingDTO {
	out := make([]dto.TopSellingDTO, 0)
	index := make(map[string]int)
	for _, t := range today {
		for _, it := range t.Items {
			if i, ok := index[it.Name]; ok {
				out[i].Quantity += it.Quantity
				continue
			}
			index[it.Name] = len(out)
			out = append(out, dto.TopSellingDTO{Name: it.Name, Quantity: it.Quantity})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func paymentBreakdown(today []*entity.Transaction) []dto.PaymentBreakdownDTO {
	out := make([]dto.PaymentBreakdownDTO, 0)
	index := make(map[string]int)
	for _, t := range today {
		i, ok := index[t.PaymentMethod]
		if !ok {
			i = len(out)
			index[t.PaymentMethod] = i
			out = append(out, dto.PaymentBreakdownDTO{Method: t.PaymentMethod, Total: decimal.Zero})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(t.GrandTotal)
	}
	for i := range out {
		out[i].Total = pricing.Round2(out[i].Total)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

// salesByDay solo incluye días con ventas, del más reciente al más antiguo.
func salesByDay(window []*entity.Transaction, loc *time.Location) []dto.DailySalesDTO {
	byDay := make(map[string]*dto.DailySalesDTO)
	for _, t := range window {
		day := t.Date.In(loc).Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &dto.DailySalesDTO{Day: day, Revenue: decimal.Zero}
			byDay[day] = d
		}
		d.Transactions++
		d.Revenue = d.Revenue.Add(t.GrandTotal)
	}
	out := make([]dto.DailySalesDTO, 0, len(byDay))
	for _, d := range byDay {
		d.Revenue = pricing.Round2(d.Revenue)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}
