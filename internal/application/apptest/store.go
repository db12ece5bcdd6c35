// Package apptest provee una implementación en memoria de los puertos de persistencia para los tests
// de casos de uso. Run toma una foto del estado y la restaura si la función falla, igual que un rollback.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendc/go-deepcopy"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Operaciones a las que se les puede inyectar un error con FailOn.
const (
	OpClientCreate       = "clients.Create"
	OpProductCreate      = "products.Create"
	OpDocumentCreate     = "documents.Create"
	OpDocumentUpdate     = "documents.Update"
	OpDocumentStatus     = "documents.UpdateStatus"
	OpDocumentDelete     = "documents.Delete"
	OpItemsCreate        = "documents.CreateItems"
	OpNextSequence       = "documents.NextSequence"
	OpInstallmentsCreate = "installments.CreateBatch"
	OpInstallmentPayment = "installments.UpdatePayment"
)

type state struct {
	Clients      map[string]*entity.Client
	Products     map[string]*entity.Product
	Documents    map[string]*entity.Document
	Items        map[string][]*entity.LineItem
	Installments map[string]*entity.Installment
	Counters     map[entity.DocumentType]int64
}

// Store estado compartido por los repositorios fake.
type Store struct {
	mu     sync.Mutex
	st     state
	fail   map[string][]error
	calls  map[string]int
	TxRuns int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		st: state{
			Clients:      map[string]*entity.Client{},
			Products:     map[string]*entity.Product{},
			Documents:    map[string]*entity.Document{},
			Items:        map[string][]*entity.LineItem{},
			Installments: map[string]*entity.Installment{},
			Counters:     map[entity.DocumentType]int64{},
		},
		fail:  map[string][]error{},
		calls: map[string]int{},
	}
}

// FailOn encola errores para las próximas llamadas a op (uno por llamada).
func (s *Store) FailOn(op string, errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = append(s.fail[op], errs...)
}

// Calls cantidad de veces que se invocó op.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// check registra la llamada y devuelve el error encolado, si hay. Se llama con mu tomado.
func (s *Store) check(op string) error {
	s.calls[op]++
	q := s.fail[op]
	if len(q) == 0 {
		return nil
	}
	s.fail[op] = q[1:]
	return q[0]
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	var out T
	if err := deepcopy.Copy(&out, v); err != nil {
		panic(fmt.Sprintf("apptest: clone %T: %v", v, err))
	}
	return &out
}

// ── Transacciones ────────────────────────────────────────────────────────────

// Run ejecuta fn con los repos de documentos y parcelas. Si fn devuelve error el estado vuelve a la
// foto tomada antes de empezar.
func (s *Store) Run(ctx context.Context, fn func(documents repository.DocumentRepository, installments repository.InstallmentRepository) error) error {
	s.mu.Lock()
	s.TxRuns++
	var snapshot state
	err := deepcopy.Copy(&snapshot, &s.st)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := fn(s.Documents(), s.Installments()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Accesos directos para armar y verificar escenarios ──────────────────────

// Clients repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Documents repositorio de documentos.
func (s *Store) Documents() repository.DocumentRepository { return &documentRepo{s: s} }

// Installments repositorio de parcelas.
func (s *Store) Installments() repository.InstallmentRepository { return &installmentRepo{s: s} }

// PutClient inserta un cliente sin validaciones.
func (s *Store) PutClient(c *entity.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Clients[c.ID] = clone(c)
}

// PutProduct inserta un producto sin validaciones.
func (s *Store) PutProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Products[p.ID] = clone(p)
}

// PutDocument inserta un documento con sus líneas sin tocar el contador.
func (s *Store) PutDocument(d *entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := clone(d)
	s.st.Items[d.ID] = cp.Items
	cp.Items = nil
	s.st.Documents[d.ID] = cp
}

// PutInstallment inserta una parcela.
func (s *Store) PutInstallment(i *entity.Installment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Installments[i.ID] = clone(i)
}

// SetCounter fija el último valor del contador autoritativo.
func (s *Store) SetCounter(t entity.DocumentType, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Counters[t] = v
}

// Document devuelve una copia del documento con sus líneas, o nil.
func (s *Store) Document(id string) *entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.st.Documents[id]
	if !ok {
		return nil
	}
	cp := clone(d)
	for _, it := range s.st.Items[id] {
		cp.Items = append(cp.Items, clone(it))
	}
	return cp
}

// DocumentCount cantidad de documentos persistidos.
func (s *Store) DocumentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.Documents)
}

// InstallmentsOf parcelas del documento ordenadas por número.
func (s *Store) InstallmentsOf(documentID string) []*entity.Installment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installmentsOf(documentID)
}

func (s *Store) installmentsOf(documentID string) []*entity.Installment {
	var out []*entity.Installment
	for _, i := range s.st.Installments {
		if i.DocumentID == documentID {
			out = append(out, clone(i))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Number < out[b].Number })
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type clientRepo struct{ s *Store }

var _ repository.ClientRepository = (*clientRepo)(nil)

func (r *clientRepo) conflict(c *entity.Client) error {
	for _, o := range r.s.st.Clients {
		if o.ID == c.ID {
			continue
		}
		if strings.EqualFold(o.TradeName, c.TradeName) {
			return &domain.ConflictError{Field: "trade_name", Value: c.TradeName}
		}
		if c.TaxID != "" && o.TaxID == c.TaxID {
			return &domain.ConflictError{Field: "tax_id", Value: c.TaxID}
		}
	}
	return nil
}

func (r *clientRepo) Create(ctx context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpClientCreate); err != nil {
		return err
	}
	if err := r.conflict(c); err != nil {
		return err
	}
	r.s.st.Clients[c.ID] = clone(c)
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.Clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.conflict(c); err != nil {
		return err
	}
	r.s.st.Clients[c.ID] = clone(c)
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.st.Clients[id]), nil
}

func (r *clientRepo) GetByTradeName(ctx context.Context, name string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.Clients {
		if strings.EqualFold(c.TradeName, name) {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *clientRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.Clients {
		if c.TaxID == taxID {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *clientRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToLower(search)
	var out []*entity.Client
	for _, c := range r.s.st.Clients {
		if search == "" || strings.Contains(strings.ToLower(c.TradeName), search) ||
			strings.Contains(strings.ToLower(c.LegalName), search) || strings.Contains(c.TaxID, search) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].TradeName < out[b].TradeName })
	return page(out, limit, offset), nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.Clients[id]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.s.st.Documents {
		if d.ClientID == id {
			return fmt.Errorf("%w: cliente possui documentos", domain.ErrConflict)
		}
	}
	delete(r.s.st.Clients, id)
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) conflict(p *entity.Product) error {
	for _, o := range r.s.st.Products {
		if o.ID != p.ID && o.SKU == p.SKU {
			return &domain.ConflictError{Field: "sku", Value: p.SKU}
		}
	}
	return nil
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpProductCreate); err != nil {
		return err
	}
	if err := r.conflict(p); err != nil {
		return err
	}
	r.s.st.Products[p.ID] = clone(p)
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.conflict(p); err != nil {
		return err
	}
	r.s.st.Products[p.ID] = clone(p)
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.st.Products[id]), nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.st.Products {
		if p.SKU == sku {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToUpper(search)
	var out []*entity.Product
	for _, p := range r.s.st.Products {
		if search == "" || strings.Contains(p.SKU, search) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SKU < out[b].SKU })
	return page(out, limit, offset), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.Products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.Products, id)
	for _, items := range r.s.st.Items {
		for _, it := range items {
			if it.ProductID == id {
				it.ProductID = ""
			}
		}
	}
	return nil
}

// ── Documentos ───────────────────────────────────────────────────────────────

type documentRepo struct{ s *Store }

var _ repository.DocumentRepository = (*documentRepo)(nil)

func (r *documentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpDocumentCreate); err != nil {
		return err
	}
	for _, o := range r.s.st.Documents {
		if o.Number == d.Number {
			return &domain.ConflictError{Field: "number", Value: d.Number}
		}
	}
	if _, ok := r.s.st.Clients[d.ClientID]; !ok {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, d.ClientID)
	}
	cp := clone(d)
	cp.Items = nil
	r.s.st.Documents[d.ID] = cp
	return nil
}

func (r *documentRepo) Update(ctx context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpDocumentUpdate); err != nil {
		return err
	}
	cur, ok := r.s.st.Documents[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.ClientID = d.ClientID
	cur.IssueDate = d.IssueDate
	cur.ShippingCost = d.ShippingCost
	cur.Total = d.Total
	cur.PaymentMethod = d.PaymentMethod
	cur.PaymentTerm = d.PaymentTerm
	cur.DeliveryDays = d.DeliveryDays
	cur.UpdatedAt = d.UpdatedAt
	return nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpDocumentStatus); err != nil {
		return err
	}
	cur, ok := r.s.st.Documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = status
	return nil
}

func (r *documentRepo) SetInvoiceNumber(ctx context.Context, id, invoiceNumber string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.Documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.InvoiceNumber = invoiceNumber
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.st.Documents[id]), nil
}

func (r *documentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *documentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]repository.DocumentSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.DocumentSummary
	for _, d := range r.s.st.Documents {
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.ClientID != "" && d.ClientID != f.ClientID {
			continue
		}
		name := ""
		if c := r.s.st.Clients[d.ClientID]; c != nil {
			name = c.TradeName
		}
		out = append(out, repository.DocumentSummary{Document: clone(d), ClientName: name})
	}
	sort.Slice(out, func(a, b int) bool {
		da, db := out[a].Document, out[b].Document
		if !da.IssueDate.Equal(db.IssueDate) {
			return da.IssueDate.After(db.IssueDate)
		}
		return da.Number > db.Number
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *documentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpDocumentDelete); err != nil {
		return err
	}
	if _, ok := r.s.st.Documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.Documents, id)
	delete(r.s.st.Items, id)
	for k, i := range r.s.st.Installments {
		if i.DocumentID == id {
			delete(r.s.st.Installments, k)
		}
	}
	return nil
}

func (r *documentRepo) CreateItems(ctx context.Context, items []*entity.LineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpItemsCreate); err != nil {
		return err
	}
	for _, it := range items {
		if _, ok := r.s.st.Documents[it.DocumentID]; !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, it.DocumentID)
		}
		r.s.st.Items[it.DocumentID] = append(r.s.st.Items[it.DocumentID], clone(it))
	}
	return nil
}

func (r *documentRepo) DeleteItems(ctx context.Context, documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.Items, documentID)
	return nil
}

func (r *documentRepo) ListItems(ctx context.Context, documentID string) ([]*entity.LineItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LineItem
	for _, it := range r.s.st.Items[documentID] {
		out = append(out, clone(it))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Position < out[b].Position })
	return out, nil
}

func (r *documentRepo) ListProductionItems(ctx context.Context) ([]repository.ProductionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ProductionItem
	for _, d := range r.s.st.Documents {
		if d.Type != entity.DocumentTypeOrder || d.Status != entity.StatusInProduction {
			continue
		}
		name := ""
		if c := r.s.st.Clients[d.ClientID]; c != nil {
			name = c.TradeName
		}
		for _, it := range r.s.st.Items[d.ID] {
			out = append(out, repository.ProductionItem{
				Item:           clone(it),
				DocumentID:     d.ID,
				DocumentNumber: d.Number,
				IssueDate:      d.IssueDate,
				DeliveryDays:   d.DeliveryDays,
				ClientName:     name,
			})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].IssueDate.Equal(out[b].IssueDate) {
			return out[a].IssueDate.Before(out[b].IssueDate)
		}
		if out[a].DocumentNumber != out[b].DocumentNumber {
			return out[a].DocumentNumber < out[b].DocumentNumber
		}
		return out[a].Item.Position < out[b].Item.Position
	})
	return out, nil
}

func (r *documentRepo) LastSequence(ctx context.Context, t entity.DocumentType) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.maxSequence(t), nil
}

func (r *documentRepo) maxSequence(t entity.DocumentType) int64 {
	var top int64
	for _, d := range r.s.st.Documents {
		if d.Type == t && d.Sequence > top {
			top = d.Sequence
		}
	}
	return top
}

// NextSequence reproduce el upsert de document_counters: GREATEST(contador+1, máximo persistido+1, start).
func (r *documentRepo) NextSequence(ctx context.Context, t entity.DocumentType, start int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpNextSequence); err != nil {
		return 0, err
	}
	next := r.maxSequence(t) + 1
	if cur, ok := r.s.st.Counters[t]; ok {
		if cur+1 > next {
			next = cur + 1
		}
	} else if start > next {
		next = start
	}
	r.s.st.Counters[t] = next
	return next, nil
}

// ── Parcelas ─────────────────────────────────────────────────────────────────

type installmentRepo struct{ s *Store }

var _ repository.InstallmentRepository = (*installmentRepo)(nil)

func (r *installmentRepo) CreateBatch(ctx context.Context, list []*entity.Installment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpInstallmentsCreate); err != nil {
		return err
	}
	for _, i := range list {
		if _, ok := r.s.st.Documents[i.DocumentID]; !ok {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, i.DocumentID)
		}
		for _, o := range r.s.st.Installments {
			if o.DocumentID == i.DocumentID && o.Number == i.Number {
				return &domain.ConflictError{Field: "installment_number", Value: fmt.Sprint(i.Number)}
			}
		}
		r.s.st.Installments[i.ID] = clone(i)
	}
	return nil
}

func (r *installmentRepo) GetByID(ctx context.Context, id string) (*entity.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.st.Installments[id]), nil
}

func (r *installmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Installment, error) {
	return r.GetByID(ctx, id)
}

func (r *installmentRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.installmentsOf(documentID), nil
}

func (r *installmentRepo) UpdatePayment(ctx context.Context, id string, status entity.InstallmentStatus, paidDate *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(OpInstallmentPayment); err != nil {
		return err
	}
	cur, ok := r.s.st.Installments[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = status
	cur.PaidDate = clone(paidDate)
	return nil
}

func (r *installmentRepo) CountUnpaid(ctx context.Context, documentID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, i := range r.s.st.Installments {
		if i.DocumentID == documentID && i.Status != entity.InstallmentPaid {
			n++
		}
	}
	return n, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *installmentRepo) List(ctx context.Context, f repository.ReceivableFilter) ([]repository.ReceivableRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	today := dateOnly(f.Today)
	var out []repository.ReceivableRow
	for _, i := range r.s.st.Installments {
		overdue := i.Status != entity.InstallmentPaid && dateOnly(i.DueDate).Before(today)
		switch f.Status {
		case entity.InstallmentPaid:
			if i.Status != entity.InstallmentPaid {
				continue
			}
		case entity.InstallmentOpen:
			if i.Status == entity.InstallmentPaid || overdue {
				continue
			}
		case entity.InstallmentOverdue:
			if !overdue {
				continue
			}
		}
		if f.DueFrom != nil && dateOnly(i.DueDate).Before(dateOnly(*f.DueFrom)) {
			continue
		}
		if f.DueTo != nil && dateOnly(i.DueDate).After(dateOnly(*f.DueTo)) {
			continue
		}
		row := repository.ReceivableRow{Installment: clone(i)}
		if d := r.s.st.Documents[i.DocumentID]; d != nil {
			row.DocumentNumber = d.Number
			row.DocumentStatus = d.Status
			if c := r.s.st.Clients[d.ClientID]; c != nil {
				row.ClientName = c.TradeName
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(a, b int) bool {
		ia, ib := out[a].Installment, out[b].Installment
		if !ia.DueDate.Equal(ib.DueDate) {
			return ia.DueDate.Before(ib.DueDate)
		}
		if out[a].DocumentNumber != out[b].DocumentNumber {
			return out[a].DocumentNumber < out[b].DocumentNumber
		}
		return ia.Number < ib.Number
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *installmentRepo) Totals(ctx context.Context, today time.Time) (repository.ReceivableTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := repository.ReceivableTotals{Open: decimal.Zero, Overdue: decimal.Zero}
	day := dateOnly(today)
	for _, i := range r.s.st.Installments {
		if i.Status == entity.InstallmentPaid {
			continue
		}
		t.Open = t.Open.Add(i.Amount)
		if dateOnly(i.DueDate).Before(day) {
			t.Overdue = t.Overdue.Add(i.Amount)
		}
	}
	return t, nil
}
