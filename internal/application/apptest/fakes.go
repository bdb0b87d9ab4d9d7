// Package apptest provee repositorios en memoria y un TxRunner con rollback
// por snapshot para probar los casos de uso sin PostgreSQL. Las semánticas
// replican a los adaptadores reales: duplicados, bloqueo irrelevante en un
// solo hilo, y plegado de stock con ledger.Sign.
package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Store estado compartido de los repos en memoria.
type Store struct {
	Products    map[string]*entity.Product
	Types       []*entity.ProductType
	Movements   []*entity.Movement
	Sales       []*entity.Sale
	Orders      map[string]*entity.Order
	Transfers   []*entity.Transfer
	Warehouses  map[string]*entity.Warehouse
	Resolutions []*entity.Resolution
	Users       map[string]*entity.User
	seq         int64
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Products:   map[string]*entity.Product{},
		Orders:     map[string]*entity.Order{},
		Warehouses: map[string]*entity.Warehouse{},
		Users:      map[string]*entity.User{},
	}
}

// AddProduct registra un producto directo en el estado (arranque del test).
func (s *Store) AddProduct(p *entity.Product) { s.Products[p.ID] = copyProduct(p) }

// AddWarehouse registra una bodega directa en el estado.
func (s *Store) AddWarehouse(w *entity.Warehouse) { s.Warehouses[w.ID] = w }

// AppendMovement agrega un hecho al libro sin pasar por ningún caso de uso.
func (s *Store) AppendMovement(m *entity.Movement) {
	s.seq++
	c := *m
	c.Seq = s.seq
	s.Movements = append(s.Movements, &c)
}

// StockOf pliega el libro en memoria, igual que el SUM(CASE) del adaptador SQL.
func (s *Store) StockOf(productID string) int64 {
	var stock int64
	for _, m := range s.Movements {
		if m.ProductID == productID {
			stock += ledger.Sign(m.Kind) * m.Quantity
		}
	}
	return stock
}

func (s *Store) snapshot() *Store {
	snap := &Store{
		Products:    make(map[string]*entity.Product, len(s.Products)),
		Types:       append([]*entity.ProductType(nil), s.Types...),
		Movements:   append([]*entity.Movement(nil), s.Movements...),
		Sales:       append([]*entity.Sale(nil), s.Sales...),
		Orders:      make(map[string]*entity.Order, len(s.Orders)),
		Transfers:   append([]*entity.Transfer(nil), s.Transfers...),
		Warehouses:  s.Warehouses,
		Resolutions: append([]*entity.Resolution(nil), s.Resolutions...),
		Users:       s.Users,
		seq:         s.seq,
	}
	for id, p := range s.Products {
		snap.Products[id] = copyProduct(p)
	}
	for id, o := range s.Orders {
		snap.Orders[id] = copyOrder(o)
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.Products = snap.Products
	s.Types = snap.Types
	s.Movements = snap.Movements
	s.Sales = snap.Sales
	s.Orders = snap.Orders
	s.Transfers = snap.Transfers
	s.Resolutions = snap.Resolutions
	s.seq = snap.seq
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner simula la transacción con snapshot del estado: si el callback
// falla, el estado vuelve exacto a como estaba (ninguna escritura parcial).
type TxRunner struct {
	Store *Store
}

// NewTxRunner construye el runner sobre el estado dado.
func NewTxRunner(store *Store) *TxRunner { return &TxRunner{Store: store} }

func (r *TxRunner) inTx(fn func() error) error {
	snap := r.Store.snapshot()
	if err := fn(); err != nil {
		r.Store.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewMovementRepo(r.Store), NewProductRepo(r.Store))
	})
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewMovementRepo(r.Store), NewProductRepo(r.Store), NewSaleRepo(r.Store))
	})
}

func (r *TxRunner) RunOrder(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewMovementRepo(r.Store), NewProductRepo(r.Store), NewOrderRepo(r.Store))
	})
}

func (r *TxRunner) RunTransfer(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.inTx(func() error {
		return fn(NewMovementRepo(r.Store), NewProductRepo(r.Store), NewTransferRepo(r.Store))
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct{ s *Store }

func NewProductRepo(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.s.Products {
		if existing.IDCode == p.IDCode {
			return domain.ErrDuplicate
		}
	}
	r.s.Products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) GetByIDCode(idCode string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.IDCode == idCode {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.Products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) List(q, typeID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.Products {
		if q != "" && !strings.Contains(strings.ToLower(p.IDCode), strings.ToLower(q)) &&
			!strings.Contains(strings.ToLower(p.Description), strings.ToLower(q)) {
			continue
		}
		if typeID != "" && (p.ProductTypeID == nil || *p.ProductTypeID != typeID) {
			continue
		}
		list = append(list, copyProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].IDCode < list[j].IDCode })
	return paginate(list, limit, offset), nil
}

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

type ProductTypeRepo struct{ s *Store }

func NewProductTypeRepo(s *Store) *ProductTypeRepo { return &ProductTypeRepo{s: s} }

func (r *ProductTypeRepo) Create(pt *entity.ProductType) error {
	for _, existing := range r.s.Types {
		if existing.Name == pt.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.Types = append(r.s.Types, pt)
	return nil
}

func (r *ProductTypeRepo) GetByName(name string) (*entity.ProductType, error) {
	for _, pt := range r.s.Types {
		if pt.Name == name {
			return pt, nil
		}
	}
	return nil, nil
}

func (r *ProductTypeRepo) List() ([]*entity.ProductType, error) {
	list := append([]*entity.ProductType(nil), r.s.Types...)
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

type MovementRepo struct{ s *Store }

func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.s.AppendMovement(m)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.Movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByProduct(productID, order string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.Movements {
		if m.ProductID == productID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.MovedAt.Equal(b.MovedAt) {
			if order == repository.OrderAsc {
				return a.MovedAt.Before(b.MovedAt)
			}
			return a.MovedAt.After(b.MovedAt)
		}
		if order == repository.OrderAsc {
			return a.Seq < b.Seq
		}
		return a.Seq > b.Seq
	})
	return paginate(list, limit, offset), nil
}

func (r *MovementRepo) StockOf(productID string) (int64, error) {
	return r.s.StockOf(productID), nil
}

func (r *MovementRepo) StockByProducts(productIDs []string) (map[string]int64, error) {
	out := map[string]int64{}
	seen := map[string]bool{}
	for _, m := range r.s.Movements {
		seen[m.ProductID] = true
	}
	for _, id := range productIDs {
		if seen[id] {
			out[id] = r.s.StockOf(id)
		}
	}
	return out, nil
}

var _ repository.ResolutionRepository = (*ResolutionRepo)(nil)

type ResolutionRepo struct{ s *Store }

func NewResolutionRepo(s *Store) *ResolutionRepo { return &ResolutionRepo{s: s} }

func (r *ResolutionRepo) Create(res *entity.Resolution) error {
	r.s.Resolutions = append(r.s.Resolutions, res)
	return nil
}

func (r *ResolutionRepo) ListAll() ([]*entity.Resolution, error) {
	return append([]*entity.Resolution(nil), r.s.Resolutions...), nil
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

type SaleRepo struct{ s *Store }

func NewSaleRepo(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.Sales = append(r.s.Sales, sale)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.s.Sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	list := append([]*entity.Sale(nil), r.s.Sales...)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct{ s *Store }

func NewOrderRepo(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(o *entity.Order) error {
	for _, existing := range r.s.Orders {
		if existing.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *OrderRepo) Complete(id, evidencePhotoURL, completedBy string, at time.Time) error {
	o, ok := r.s.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := copyOrder(o)
	updated.Status = entity.OrderStatusCompleted
	updated.EvidencePhotoURL = evidencePhotoURL
	updated.CompletedBy = completedBy
	updated.UpdatedAt = at
	r.s.Orders[id] = updated
	return nil
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	var list []*entity.Order
	for _, o := range r.s.Orders {
		list = append(list, copyOrder(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

type WarehouseRepo struct{ s *Store }

func NewWarehouseRepo(s *Store) *WarehouseRepo { return &WarehouseRepo{s: s} }

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	for _, existing := range r.s.Warehouses {
		if existing.Code == w.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Warehouses[w.ID] = w
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.Warehouses[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.s.Warehouses {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

type TransferRepo struct{ s *Store }

func NewTransferRepo(s *Store) *TransferRepo { return &TransferRepo{s: s} }

func (r *TransferRepo) Create(t *entity.Transfer) error {
	r.s.Transfers = append(r.s.Transfers, t)
	return nil
}

func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	list := append([]*entity.Transfer(nil), r.s.Transfers...)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(u *entity.User) error {
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.Users[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		return list
	}
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
