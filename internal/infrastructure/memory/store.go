// Package memory implementa los repositorios sobre un almacenamiento en proceso.
// Reproduce la semántica transaccional de PostgreSQL que necesita el checkout:
// bloqueo de filas por producto (orden ascendente), consecutivo serializado y
// escrituras diferidas hasta el commit (rollback = descartar).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// Store es el estado compartido de todos los repositorios en memoria.
type Store struct {
	mu             sync.RWMutex
	products       map[int64]*entity.Product
	customers      map[int64]*entity.Customer
	transactions   []*entity.Transaction // orden de emisión (ID ascendente)
	nextProductID  int64
	nextCustomerID int64
	sequence       int64 // último consecutivo emitido

	locksMu    sync.Mutex
	rowLocks   map[int64]chan struct{}
	ledgerLock chan struct{}
}

// NewStore crea un store vacío con el cliente de mostrador ya registrado.
func NewStore() *Store {
	s := &Store{
		products:       make(map[int64]*entity.Product),
		customers:      make(map[int64]*entity.Customer),
		nextProductID:  1,
		nextCustomerID: entity.WalkInCustomerID + 1,
		sequence:       entity.InvoiceSequenceStart - 1,
		rowLocks:       make(map[int64]chan struct{}),
		ledgerLock:     make(chan struct{}, 1),
	}
	s.customers[entity.WalkInCustomerID] = &entity.Customer{
		ID:   entity.WalkInCustomerID,
		Name: entity.WalkInCustomerName,
	}
	return s
}

// Load inserta productos y clientes con sus IDs explícitos (datos demo o fixtures de test)
// y ajusta los contadores para que los siguientes IDs no colisionen.
func (s *Store) Load(products []*entity.Product, customers []*entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		cp := *p
		s.products[cp.ID] = &cp
		if cp.ID >= s.nextProductID {
			s.nextProductID = cp.ID + 1
		}
	}
	for _, c := range customers {
		cp := *c
		s.customers[cp.ID] = &cp
		if cp.ID >= s.nextCustomerID {
			s.nextCustomerID = cp.ID + 1
		}
	}
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

// Transactions devuelve el repositorio del ledger (lectura fuera de transacción).
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s: s} }

// ── Bloqueos ─────────────────────────────────────────────────────────────────

func (s *Store) rowLock(id int64) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.rowLocks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[id] = ch
	}
	return ch
}

// acquire espera el semáforo o la cancelación del contexto.
func acquire(ctx context.Context, ch chan struct{}) error {
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func release(ch chan struct{}) { <-ch }

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	cp := *t
	cp.Items = append([]entity.TransactionItem(nil), t.Items...)
	return &cp
}
