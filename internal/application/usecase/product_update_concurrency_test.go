package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/application/usecase"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
	"github.com/jhoicas/accupos-api/internal/infrastructure/memory"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
	"github.com/jhoicas/accupos-api/pkg/logger"
)

// midUpdateRepo dispara onApply entre la lectura bloqueada y la escritura del Update.
type midUpdateRepo struct {
	repository.ProductRepository
	onApply func()
}

func (r *midUpdateRepo) Update(ctx context.Context, id int64, apply func(p *entity.Product) error) (*entity.Product, error) {
	return r.ProductRepository.Update(ctx, id, func(p *entity.Product) error {
		r.onApply()
		return apply(p)
	})
}

// heldRunner deja la transacción del checkout abierta (bloqueos tomados) hasta que se cierre release.
type heldRunner struct {
	inner   checkout.TxRunner
	locked  chan struct{}
	release chan struct{}
}

func (r *heldRunner) RunCheckout(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	customerRepo repository.CustomerRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.inner.RunCheckout(ctx, func(s repository.StockRepository, c repository.CustomerRepository, t repository.TransactionRepository) error {
		if err := fn(s, c, t); err != nil {
			return err
		}
		close(r.locked)
		<-r.release
		return nil
	})
}

func sellTwoPens(t *testing.T, uc *checkout.UseCase) {
	t.Helper()
	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: 1, Quantity: 2}},
		PaymentMethod: entity.PaymentCard,
	})
	assert.NoError(t, err)
}

func TestProductUseCase_UpdateConCheckoutEntreLecturaYEscritura(t *testing.T) {
	store := memory.NewStore()
	store.Load(seed.Products(), seed.Customers())
	sales := checkout.NewUseCase(memory.NewTxRunner(store), store.Transactions(), logger.NewNop())

	var wg sync.WaitGroup
	repo := &midUpdateRepo{ProductRepository: store.Products()}
	repo.onApply = func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sellTwoPens(t, sales)
		}()
		// Tiempo para que la venta llegue al bloqueo de la fila.
		time.Sleep(20 * time.Millisecond)
	}

	uc := usecase.NewProductUseCase(repo)
	newPrice := decimal.RequireFromString("13.49")
	out, err := uc.Update(context.Background(), 1, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 150, out.Stock)
	wg.Wait()

	list, err := store.Transactions().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := store.Products().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 148, got.Stock)
	assert.True(t, got.Price.Equal(newPrice))
	// La venta se hizo después de la edición: usa el precio nuevo.
	assert.True(t, list[0].Items[0].UnitPrice.Equal(newPrice))
}

func TestProductUseCase_UpdateEsperaCheckoutEnCurso(t *testing.T) {
	store := memory.NewStore()
	store.Load(seed.Products(), seed.Customers())
	runner := &heldRunner{
		inner:   memory.NewTxRunner(store),
		locked:  make(chan struct{}),
		release: make(chan struct{}),
	}
	sales := checkout.NewUseCase(runner, store.Transactions(), logger.NewNop())
	uc := usecase.NewProductUseCase(store.Products())

	saleDone := make(chan struct{})
	go func() {
		defer close(saleDone)
		sellTwoPens(t, sales)
	}()
	<-runner.locked

	newPrice := decimal.RequireFromString("13.49")
	updateDone := make(chan *dto.ProductResponse, 1)
	go func() {
		out, err := uc.Update(context.Background(), 1, dto.UpdateProductRequest{Price: &newPrice})
		assert.NoError(t, err)
		updateDone <- out
	}()

	select {
	case <-updateDone:
		t.Fatal("la edición no debe escribir mientras la venta tiene la fila bloqueada")
	case <-time.After(30 * time.Millisecond):
	}
	close(runner.release)
	<-saleDone

	out := <-updateDone
	require.NotNil(t, out)
	assert.Equal(t, 148, out.Stock)

	got, err := store.Products().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 148, got.Stock)
	assert.True(t, got.Price.Equal(newPrice))
}
