package payment_usecases

import (
	"context"
	"errors"
	"sync"

	"certschool.io/application/repository"
	"certschool.io/entities"
	mq_types "certschool.io/infrastructure/message_queue/types"
	intasend_payment_processor "certschool.io/infrastructure/payments/intasend"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	pesapal_payment_processor "certschool.io/infrastructure/payments/pesapal"
)

type fakeCard struct {
	calls int
	req   intasend_payment_processor.CheckoutRequest
	err   error
}

func (f *fakeCard) Initiate(ctx context.Context, req intasend_payment_processor.CheckoutRequest) (*intasend_payment_processor.CheckoutResult, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &intasend_payment_processor.CheckoutResult{
		URL:       "https://payment.intasend.com/checkout/INV1/express/",
		InvoiceID: "INV1",
		APIRef:    "INV-REF",
		Status:    intasend_payment_processor.InitialStatus,
		Raw:       map[string]any{"id": "INV1"},
	}, nil
}

type fakeBank struct {
	initCalls  int
	fetchCalls int
	initReq    paystack_payment_processor.InitializeRequest
	status     *paystack_payment_processor.TransactionStatus
	err        error
}

func (f *fakeBank) Initiate(ctx context.Context, req paystack_payment_processor.InitializeRequest) (*paystack_payment_processor.InitializeResult, error) {
	f.initCalls++
	f.initReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &paystack_payment_processor.InitializeResult{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		AccessCode:       "abc",
		Reference:        req.Reference,
	}, nil
}

func (f *fakeBank) FetchStatus(ctx context.Context, reference string) (*paystack_payment_processor.TransactionStatus, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	status := *f.status
	status.Reference = reference
	return &status, nil
}

type fakeOrder struct {
	initCalls  int
	fetchCalls int
	initReq    pesapal_payment_processor.OrderRequest
	status     *pesapal_payment_processor.TransactionStatus
	err        error
}

func (f *fakeOrder) Initiate(ctx context.Context, req pesapal_payment_processor.OrderRequest) (*pesapal_payment_processor.OrderResult, error) {
	f.initCalls++
	f.initReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &pesapal_payment_processor.OrderResult{
		OrderTrackingID:   "OT-1",
		MerchantReference: "ORD-1",
		RedirectURL:       "https://pay.pesapal.com/iframe?OrderTrackingId=OT-1",
		IPNID:             "ipn-1",
	}, nil
}

func (f *fakeOrder) FetchStatus(ctx context.Context, orderTrackingID string) (*pesapal_payment_processor.TransactionStatus, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	status := *f.status
	status.OrderTrackingID = orderTrackingID
	return &status, nil
}

type paymentKey struct {
	provider  entities.PaymentProvider
	reference string
}

// memoryPayments mirrors the unique (provider, reference) index and the
// $set/$setOnInsert split of the mongo upsert.
type memoryPayments struct {
	mu        sync.Mutex
	rows      map[paymentKey]entities.Payment
	insertErr error
	upsertErr error
}

func newMemoryPayments() *memoryPayments {
	return &memoryPayments{rows: map[paymentKey]entities.Payment{}}
}

func (m *memoryPayments) Insert(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	key := paymentKey{payment.Provider, payment.Reference}
	if _, ok := m.rows[key]; ok {
		return nil, repository.ErrPaymentExists
	}
	row := *payment.ParseModel().(*entities.Payment)
	m.rows[key] = row
	return &row, nil
}

func (m *memoryPayments) FindByReference(ctx context.Context, provider entities.PaymentProvider, reference string) (*entities.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[paymentKey{provider, reference}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryPayments) UpsertByReference(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	key := paymentKey{payment.Provider, payment.Reference}
	row, ok := m.rows[key]
	if !ok {
		row = *payment.ParseModel().(*entities.Payment)
	} else {
		row.Status = payment.Status
		row.Amount = payment.Amount
		row.Currency = payment.Currency
		row.Metadata = payment.Metadata
		if payment.MerchantReference != nil {
			row.MerchantReference = payment.MerchantReference
		}
	}
	m.rows[key] = row
	return &row, nil
}

func (m *memoryPayments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memoryApplications struct {
	mu   sync.Mutex
	rows map[string]entities.Application
	err  error
}

func (m *memoryApplications) FindByID(ctx context.Context, id string) (*entities.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryApplications) TransitionStatus(ctx context.Context, id string, from []entities.ApplicationStatus, next entities.ApplicationStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if row.Status == s {
			row.Status = next
			m.rows[id] = row
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryApplications) status(id string) entities.ApplicationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id].Status
}

type recordingNotifier struct {
	payments []entities.Payment
}

func (r *recordingNotifier) PaymentCompleted(ctx context.Context, payment entities.Payment) {
	r.payments = append(r.payments, payment)
}

type recordingQueue struct {
	tasks []mq_types.QueueTask
	err   error
}

func (q *recordingQueue) Start()    {}
func (q *recordingQueue) Shutdown() {}
func (q *recordingQueue) Enqueue(task mq_types.QueueTask) error {
	q.tasks = append(q.tasks, task)
	return q.err
}

var errStoreDown = errors.New("connection pool exhausted")
