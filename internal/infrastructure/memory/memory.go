// Package memory provee un Store en memoria que implementa todos los puertos
// de persistencia y los runners transaccionales. Se usa en tests de aplicación:
// misma semántica todo-o-nada que PostgreSQL (snapshot + restore en lugar de
// rollback) y exclusión mutua por transacción en lugar de bloqueo de fila.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/application/sales"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

// Store estado compartido de los repos en memoria.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	invoices  map[string]*entity.Invoice
	lines     map[string][]*entity.InvoiceLine
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		invoices:  make(map[string]*entity.Invoice),
		lines:     make(map[string][]*entity.InvoiceLine),
	}
}

// SeedProduct inserta un producto directamente (solo para tests).
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// SeedCustomer inserta un cliente directamente (solo para tests).
func (s *Store) SeedCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

// ProductStock devuelve el stock actual de un producto (solo para tests).
func (s *Store) ProductStock(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.Stock
	}
	return decimal.Zero
}

// InvoiceCount cantidad de facturas persistidas (solo para tests).
func (s *Store) InvoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

type snapshot struct {
	products map[string]*entity.Product
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]*entity.Product, len(s.products)),
		invoices: make(map[string]*entity.Invoice, len(s.invoices)),
		lines:    make(map[string][]*entity.InvoiceLine, len(s.lines)),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, inv := range s.invoices {
		cp := *inv
		snap.invoices[id] = &cp
	}
	for id, ls := range s.lines {
		snap.lines[id] = append([]*entity.InvoiceLine(nil), ls...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.invoices = snap.invoices
	s.lines = snap.lines
}

// --- TxRunner ---

// TxRunner transaccionalidad en memoria: mutex por transacción completa y
// snapshot del estado; un error de fn restaura el snapshot (todo-o-nada).
type TxRunner struct {
	store *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := fn(&txStockRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := fn(&txStockRepo{store: r.store}, &txInvoiceRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// txStockRepo vista de stock dentro de la transacción: el mutex ya está
// tomado por el runner, así que accede al estado sin volver a bloquear.
type txStockRepo struct {
	store *Store
}

func (r *txStockRepo) GetForUpdate(productID string) (*entity.Product, error) {
	p, ok := r.store.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *txStockRepo) SetStock(productID string, stock decimal.Decimal) error {
	p, ok := r.store.products[productID]
	if !ok {
		return &domain.ProductNotFoundError{ProductID: productID}
	}
	cp := *p
	cp.Stock = stock
	cp.UpdatedAt = time.Now()
	r.store.products[productID] = &cp
	return nil
}

type txInvoiceRepo struct {
	store *Store
}

func (r *txInvoiceRepo) Create(invoice *entity.Invoice) error {
	cp := *invoice
	r.store.invoices[invoice.ID] = &cp
	return nil
}

func (r *txInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	cp := *line
	r.store.lines[line.InvoiceID] = append(r.store.lines[line.InvoiceID], &cp)
	return nil
}

func (r *txInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.store.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *txInvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	return append([]*entity.InvoiceLine(nil), r.store.lines[invoiceID]...), nil
}

func (r *txInvoiceRepo) ListBetween(start, end time.Time) ([]*entity.Invoice, error) {
	return listBetween(r.store.invoices, start, end), nil
}

// --- Repos fuera de transacción ---

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Code == product.Code {
			return domain.ErrDuplicateCode
		}
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *ProductRepo) List(activeOnly bool, search string) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Product
	needle := strings.ToLower(search)
	for _, p := range r.store.products {
		if activeOnly && !p.Active {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Code), needle) &&
			!strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cp := *product
	cp.Stock = current.Stock
	cp.Code = current.Code
	r.store.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) Deactivate(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	cp.Active = false
	cp.UpdatedAt = time.Now()
	r.store.products[id] = &cp
	return nil
}

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	store *Store
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{store: store}
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.customers {
		if c.Name == customer.Name {
			return domain.ErrDuplicateName
		}
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CustomerRepo) List(activeOnly bool, search string) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Customer
	needle := strings.ToLower(search)
	for _, c := range r.store.customers {
		if activeOnly && !c.Active {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	for _, c := range r.store.customers {
		if c.ID != customer.ID && c.Name == customer.Name {
			return domain.ErrDuplicateName
		}
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) Deactivate(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	cp := *c
	cp.Active = false
	cp.UpdatedAt = time.Now()
	r.store.customers[id] = &cp
	return nil
}

// InvoiceRepo implementación en memoria de InvoiceRepository (lecturas fuera
// de la transacción de venta).
type InvoiceRepo struct {
	store *Store
}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func NewInvoiceRepository(store *Store) *InvoiceRepo {
	return &InvoiceRepo{store: store}
}

func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *invoice
	r.store.invoices[invoice.ID] = &cp
	return nil
}

func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *line
	r.store.lines[line.InvoiceID] = append(r.store.lines[line.InvoiceID], &cp)
	return nil
}

func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if inv, ok := r.store.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *InvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.InvoiceLine(nil), r.store.lines[invoiceID]...), nil
}

func (r *InvoiceRepo) ListBetween(start, end time.Time) ([]*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return listBetween(r.store.invoices, start, end), nil
}

func listBetween(invoices map[string]*entity.Invoice, start, end time.Time) []*entity.Invoice {
	var list []*entity.Invoice
	for _, inv := range invoices {
		if inv.Datetime.Before(start) || inv.Datetime.After(end) {
			continue
		}
		cp := *inv
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Datetime.After(list[j].Datetime) })
	return list
}

// ReportRepo agregaciones en memoria, espejo de las consultas SQL de reportes.
type ReportRepo struct {
	store *Store
}

var _ repository.ReportRepository = (*ReportRepo)(nil)

func NewReportRepository(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func truncDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (r *ReportRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]repository.DailySalesResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byDay := make(map[time.Time]decimal.Decimal)
	for _, inv := range r.store.invoices {
		if inv.Datetime.Before(start) || inv.Datetime.After(end) {
			continue
		}
		day := truncDay(inv.Datetime)
		byDay[day] = byDay[day].Add(inv.GrandTotal)
	}
	results := make([]repository.DailySalesResult, 0, len(byDay))
	for day, total := range byDay {
		results = append(results, repository.DailySalesResult{Day: day, Total: total})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Day.Before(results[j].Day) })
	return results, nil
}

func (r *ReportRepo) StockLevels(ctx context.Context) ([]repository.StockLevelResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var results []repository.StockLevelResult
	for _, p := range r.store.products {
		if !p.Active {
			continue
		}
		results = append(results, repository.StockLevelResult{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			Category:     p.Category,
			Stock:        p.Stock,
			RestockLevel: p.RestockLevel,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Category != results[j].Category {
			return results[i].Category < results[j].Category
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (r *ReportRepo) AverageActiveStock(ctx context.Context) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	count := 0
	for _, p := range r.store.products {
		if p.Active {
			sum = sum.Add(p.Stock)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(count))), nil
}

func (r *ReportRepo) SalesDetails(ctx context.Context, since time.Time) ([]repository.SalesDetailResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var results []repository.SalesDetailResult
	for invID, ls := range r.store.lines {
		inv, ok := r.store.invoices[invID]
		if !ok || inv.Datetime.Before(since) {
			continue
		}
		for _, l := range ls {
			results = append(results, repository.SalesDetailResult{
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				Day:         truncDay(inv.Datetime),
			})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Day.Before(results[j].Day) })
	return results, nil
}
