package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.PaymentMetrics {
	return metrics.NewPaymentMetrics(prometheus.NewRegistry())
}

type fakeTransactionRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: make(map[string]*domain.Transaction)}
}

func (r *fakeTransactionRepo) CreateTransaction(tx *domain.Transaction) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := fmt.Sprintf("tx-%d", r.nextID)
	stored := *tx
	stored.ID = id
	r.byID[id] = &stored
	return id, nil
}

func (r *fakeTransactionRepo) GetTransactionByID(id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *stored
	return &cp, nil
}

func (r *fakeTransactionRepo) GetTransactionByNumber(number string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.byID {
		if stored.TransactionNumber == number {
			cp := *stored
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// SaveGatewayResult mirrors the conditional UPDATE of the real repository:
// the write only lands when the stored row is still PENDING.
func (r *fakeTransactionRepo) SaveGatewayResult(tx *domain.Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[tx.ID]
	if !ok {
		return false, domain.ErrTransactionNotFound
	}
	if stored.Status != domain.StatusPending {
		return false, nil
	}

	cp := *tx
	r.byID[tx.ID] = &cp
	return true, nil
}

func (r *fakeTransactionRepo) FindPollableTransactions() ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Transaction
	for _, stored := range r.byID {
		if stored.Status == domain.StatusPending && stored.GatewayTransactionID != "" {
			cp := *stored
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) GetProductByID(id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ReduceStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type fakeDeliveryRepo struct {
	mu            sync.Mutex
	nextID        int
	byTransaction map[string]*domain.Delivery
	created       int
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{byTransaction: make(map[string]*domain.Delivery)}
}

func (r *fakeDeliveryRepo) CreateDelivery(d *domain.Delivery) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTransaction[d.TransactionID]; exists {
		return "", fmt.Errorf("duplicate delivery for transaction %s", d.TransactionID)
	}
	r.nextID++
	id := fmt.Sprintf("delivery-%d", r.nextID)
	cp := *d
	cp.ID = id
	r.byTransaction[d.TransactionID] = &cp
	r.created++
	return id, nil
}

func (r *fakeDeliveryRepo) GetDeliveryByTransactionID(txID string) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byTransaction[txID]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeliveryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

type fakeCustomerRepo struct {
	mu      sync.Mutex
	nextID  int
	byEmail map[string]*domain.Customer
	creates int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byEmail: make(map[string]*domain.Customer)}
}

func (r *fakeCustomerRepo) CreateCustomer(c *domain.Customer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := fmt.Sprintf("customer-%d", r.nextID)
	cp := *c
	cp.ID = id
	r.byEmail[c.Email] = &cp
	r.creates++
	return id, nil
}

func (r *fakeCustomerRepo) GetCustomerByEmail(email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	submitResp  *domain.GatewayTransaction
	submitErr   error
	fetchResp   map[string]*domain.GatewayTransaction
	fetchErr    map[string]error
	submitCalls int
	fetchCalls  []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		fetchResp: make(map[string]*domain.GatewayTransaction),
		fetchErr:  make(map[string]error),
	}
}

func (g *fakeGateway) Submit(_ context.Context, req domain.PaymentRequest) (*domain.GatewayTransaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.submitCalls++
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	resp := *g.submitResp
	resp.Reference = req.Reference
	return &resp, nil
}

func (g *fakeGateway) Fetch(_ context.Context, gatewayTxID string) (*domain.GatewayTransaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fetchCalls = append(g.fetchCalls, gatewayTxID)
	if err := g.fetchErr[gatewayTxID]; err != nil {
		return nil, err
	}
	resp, ok := g.fetchResp[gatewayTxID]
	if !ok {
		return nil, domain.ErrGatewayUnavailable
	}
	cp := *resp
	return &cp, nil
}

func (g *fakeGateway) fetched() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.fetchCalls...)
}
