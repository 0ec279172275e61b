package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/accupos-api/internal/application/analytics"
	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/application/invoice"
	"github.com/jhoicas/accupos-api/internal/application/usecase"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
	"github.com/jhoicas/accupos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/accupos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/accupos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/accupos-api/internal/interfaces/http"
	"github.com/jhoicas/accupos-api/pkg/config"
	"github.com/jhoicas/accupos-api/pkg/logger"
	"github.com/jhoicas/accupos-api/pkg/metrics"
)

// storage repositorios y runner transaccional del driver elegido.
type storage struct {
	products     repository.ProductRepository
	customers    repository.CustomerRepository
	transactions repository.TransactionRepository
	txRunner     checkout.TxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.POS.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacenamiento")
	}
	defer st.close()

	m := metrics.New()

	productUC := usecase.NewProductUseCase(st.products)
	customerUC := usecase.NewCustomerUseCase(st.customers)
	checkoutUC := checkout.NewUseCase(st.txRunner, st.transactions, log, checkout.WithMetrics(m))
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.transactions, appanalytics.Config{
		Location:          loc,
		LowStockThreshold: cfg.POS.LowStockThreshold,
		RecentLimit:       cfg.POS.RecentTransactions,
	})

	// PDF: representación imprimible de la venta
	invoicePDFUC := invoice.NewPDFUseCase(st.transactions, infrapdf.NewMarotoPDFGenerator(), invoice.StoreInfo{
		Name:    cfg.POS.StoreName,
		Address: cfg.POS.StoreAddress,
		Phone:   cfg.POS.StorePhone,
		TaxID:   cfg.POS.StoreTaxID,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); cfg.App.DocsPath != "" && err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "AccuPOS API",
		}))
	} else if cfg.App.DocsPath != "" {
		log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name, Store: cfg.Store.Driver})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		Checkout:       checkoutUC,
		DashboardUC:    dashboardUC,
		InvoicePDF:     invoicePDFUC,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el almacenamiento configurado. En memoria se pierde todo al reiniciar;
// en PostgreSQL se aplican las migraciones pendientes antes de servir.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Driver == config.StorePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
		if cfg.Store.SeedDemo {
			res, err := postgres.Seed(ctx, pool, seed.Products(), seed.Customers())
			if err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Int("products", res.Products).Int("customers", res.Customers).Msg("datos demo cargados")
		}
		return &storage{
			products:     postgres.NewProductRepository(pool),
			customers:    postgres.NewCustomerRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			txRunner:     postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	}

	store := memory.NewStore()
	if cfg.Store.SeedDemo {
		store.Load(seed.Products(), seed.Customers())
		log.Info().Msg("catálogo demo cargado en memoria")
	}
	return &storage{
		products:     store.Products(),
		customers:    store.Customers(),
		transactions: store.Transactions(),
		txRunner:     memory.NewTxRunner(store),
		close:        func() {},
	}, nil
}
