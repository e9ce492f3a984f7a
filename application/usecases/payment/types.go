package payment_usecases

import (
	"context"

	"certschool.io/entities"
	intasend_payment_processor "certschool.io/infrastructure/payments/intasend"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	pesapal_payment_processor "certschool.io/infrastructure/payments/pesapal"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a request carries no currency code.
const DefaultCurrency = "KES"

type CardGateway interface {
	Initiate(ctx context.Context, req intasend_payment_processor.CheckoutRequest) (*intasend_payment_processor.CheckoutResult, error)
}

type BankRedirectGateway interface {
	Initiate(ctx context.Context, req paystack_payment_processor.InitializeRequest) (*paystack_payment_processor.InitializeResult, error)
	FetchStatus(ctx context.Context, reference string) (*paystack_payment_processor.TransactionStatus, error)
}

type OrderTrackingGateway interface {
	Initiate(ctx context.Context, req pesapal_payment_processor.OrderRequest) (*pesapal_payment_processor.OrderResult, error)
	FetchStatus(ctx context.Context, orderTrackingID string) (*pesapal_payment_processor.TransactionStatus, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, payment entities.Payment) (*entities.Payment, error)
	FindByReference(ctx context.Context, provider entities.PaymentProvider, reference string) (*entities.Payment, error)
	UpsertByReference(ctx context.Context, payment entities.Payment) (*entities.Payment, error)
}

type ApplicationStore interface {
	FindByID(ctx context.Context, id string) (*entities.Application, error)
	TransitionStatus(ctx context.Context, id string, from []entities.ApplicationStatus, next entities.ApplicationStatus) (bool, error)
}

// CompletionNotifier is told once a payment first reaches a completed status.
type CompletionNotifier interface {
	PaymentCompleted(ctx context.Context, payment entities.Payment)
}

type InitiatePaymentRequest struct {
	Email           string
	Phone           string
	Amount          decimal.Decimal
	Currency        string
	ApplicationID   *string
	CertificationID *string
	ProgramName     string
	FirstName       string
	LastName        string
	CountryCode     string
}

type InitiatePaymentResult struct {
	Provider          entities.PaymentProvider `json:"provider"`
	RedirectURL       string                   `json:"authorization_url"`
	ProviderReference string                   `json:"reference"`
	MerchantReference string                   `json:"merchant_reference,omitempty"`
	Status            string                   `json:"status"`
	// PersistenceFailed is set when the provider accepted the payment but the
	// local record could not be written.
	PersistenceFailed bool `json:"-"`
}

type ReconciledPayment struct {
	Payment                 *entities.Payment `json:"payment"`
	Completed               bool              `json:"completed"`
	ApplicationTransitioned bool              `json:"applicationTransitioned"`
}
