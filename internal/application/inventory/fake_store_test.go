package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// memLedger almacén en memoria: las transacciones se serializan con un mutex y se
// revierten restaurando una copia del estado.
type memLedger struct {
	mu        sync.Mutex
	stores    map[string]*entity.Store
	products  map[string]entity.Product // key store|id
	movements []entity.StockMovement
	seq       int64

	failCreate error // si no es nil, Create de movimientos falla
}

func newMemLedger() *memLedger {
	return &memLedger{
		stores:   map[string]*entity.Store{},
		products: map[string]entity.Product{},
	}
}

func key(storeID, productID string) string { return storeID + "|" + productID }

func (m *memLedger) addStore(id, owner string) {
	m.stores[id] = &entity.Store{ID: id, Name: id, UserID: owner, CreatedAt: time.Now()}
}

func (m *memLedger) product(storeID, productID string) (entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[key(storeID, productID)]
	return p, ok
}

func (m *memLedger) movementCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.movements)
}

// Run implementa inventory.TxRunner.
func (m *memLedger) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prodSnap := make(map[string]entity.Product, len(m.products))
	for k, v := range m.products {
		prodSnap[k] = v
	}
	movLen, seqSnap := len(m.movements), m.seq

	if err := fn(&memProducts{m}, &memMovements{m}); err != nil {
		m.products, m.movements, m.seq = prodSnap, m.movements[:movLen], seqSnap
		return err
	}
	return nil
}

var _ inventory.TxRunner = (*memLedger)(nil)

// ── stores (fuera de tx) ──

type memStores struct{ m *memLedger }

func (s *memStores) Create(_ context.Context, st *entity.Store) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.stores[st.ID] = st
	return nil
}

func (s *memStores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *memStores) ListByUser(_ context.Context, userID string) ([]*entity.Store, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*entity.Store
	for _, st := range s.m.stores {
		if st.UserID == userID {
			out = append(out, st)
		}
	}
	return out, nil
}

// ── products (dentro de tx: el mutex ya está tomado) ──

type memProducts struct{ m *memLedger }

func (r *memProducts) GetByStoreAndID(_ context.Context, storeID, productID string) (*entity.Product, error) {
	p, ok := r.m.products[key(storeID, productID)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProducts) ListByStore(_ context.Context, storeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.m.products {
		if p.StoreID == storeID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProducts) UpsertIncrement(_ context.Context, seed *entity.Product, quantity int64) (*entity.Product, bool, error) {
	k := key(seed.StoreID, seed.ID)
	p, ok := r.m.products[k]
	if !ok {
		p = *seed
		p.CurrentQuantity = quantity
		r.m.products[k] = p
		return &p, true, nil
	}
	if !p.CanAdd(quantity) {
		return nil, false, domain.ErrQuantityOverflow
	}
	p.CurrentQuantity += quantity
	p.UpdatedAt = seed.UpdatedAt
	r.m.products[k] = p
	return &p, false, nil
}

func (r *memProducts) DecrementIfSufficient(_ context.Context, storeID, productID string, quantity int64) (*entity.Product, error) {
	k := key(storeID, productID)
	p, ok := r.m.products[k]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.CurrentQuantity < quantity {
		return nil, domain.ErrInsufficientStock
	}
	p.CurrentQuantity -= quantity
	r.m.products[k] = p
	return &p, nil
}

// ── movements ──

type memMovements struct{ m *memLedger }

func (r *memMovements) Create(_ context.Context, mv *entity.StockMovement) error {
	if r.m.failCreate != nil {
		return r.m.failCreate
	}
	r.m.seq++
	mv.Seq = r.m.seq
	r.m.movements = append(r.m.movements, *mv)
	return nil
}

func (r *memMovements) ListByStore(_ context.Context, storeID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.StockMovement
	for _, mv := range r.m.movements {
		if mv.StoreID != storeID {
			continue
		}
		if from != nil && mv.Timestamp.Before(*from) {
			continue
		}
		if to != nil && mv.Timestamp.After(*to) {
			continue
		}
		cp := mv
		if p, ok := r.m.products[key(mv.StoreID, mv.ProductID)]; ok {
			cp.ProductName = p.Name
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *memMovements) NetByProduct(_ context.Context, storeID string) ([]repository.ProductBalance, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	acc := map[string]*repository.ProductBalance{}
	for _, mv := range r.m.movements {
		if mv.StoreID != storeID {
			continue
		}
		b, ok := acc[mv.ProductID]
		if !ok {
			b = &repository.ProductBalance{ProductID: mv.ProductID}
			acc[mv.ProductID] = b
		}
		b.Net += mv.Signed()
		b.Movements++
	}
	out := make([]repository.ProductBalance, 0, len(acc))
	for _, b := range acc {
		out = append(out, *b)
	}
	return out, nil
}

// lockedProducts repo de productos para lecturas fuera de tx.
type lockedProducts struct{ m *memLedger }

func (r *lockedProducts) GetByStoreAndID(ctx context.Context, storeID, productID string) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return (&memProducts{r.m}).GetByStoreAndID(ctx, storeID, productID)
}

func (r *lockedProducts) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return (&memProducts{r.m}).ListByStore(ctx, storeID)
}

func (r *lockedProducts) UpsertIncrement(context.Context, *entity.Product, int64) (*entity.Product, bool, error) {
	return nil, false, errors.New("solo lectura")
}

func (r *lockedProducts) DecrementIfSufficient(context.Context, string, string, int64) (*entity.Product, error) {
	return nil, errors.New("solo lectura")
}

// recordingPublisher guarda las alertas recibidas.
type recordingPublisher struct {
	mu     sync.Mutex
	alerts []inventory.LowStockAlert
	err    error
}

func (p *recordingPublisher) PublishLowStock(_ context.Context, a inventory.LowStockAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, a)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.alerts)
}
