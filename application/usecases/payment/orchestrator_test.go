package payment_usecases

import (
	"context"
	"errors"
	"regexp"
	"testing"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/utils"
	"certschool.io/entities"
	payment_types "certschool.io/infrastructure/payments/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	card     *fakeCard
	bank     *fakeBank
	order    *fakeOrder
	payments *memoryPayments
	subject  *Orchestrator
}

func newOrchestratorFixture() *orchestratorFixture {
	f := &orchestratorFixture{
		card:     &fakeCard{},
		bank:     &fakeBank{},
		order:    &fakeOrder{},
		payments: newMemoryPayments(),
	}
	f.subject = &Orchestrator{
		Card:          f.card,
		BankRedirect:  f.bank,
		OrderTracking: f.order,
		Payments:      f.payments,
	}
	return f
}

func baseRequest(amount string) InitiatePaymentRequest {
	return InitiatePaymentRequest{
		Email:           "learner@example.com",
		Phone:           "254712345678",
		Amount:          decimal.RequireFromString(amount),
		Currency:        "kes",
		ApplicationID:   utils.GetStringPointer("app-1"),
		CertificationID: utils.GetStringPointer("cert-1"),
		ProgramName:     "Certified Data Analyst",
		FirstName:       "Amina",
		LastName:        "Otieno",
		CountryCode:     "KE",
	}
}

func TestInitiateCardPersistsPendingPayment(t *testing.T) {
	f := newOrchestratorFixture()

	result, err := f.subject.InitiatePayment(context.Background(), entities.CardProvider, baseRequest("1500.50"))
	require.NoError(t, err)
	assert.Equal(t, "https://payment.intasend.com/checkout/INV1/express/", result.RedirectURL)
	assert.Equal(t, "INV1", result.ProviderReference)
	assert.False(t, result.PersistenceFailed)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(f.card.req.Amount))
	assert.Equal(t, "KES", f.card.req.Currency)

	stored, _ := f.payments.FindByReference(context.Background(), entities.CardProvider, "INV1")
	require.NotNil(t, stored)
	assert.Equal(t, "PENDING", stored.Status)
	assert.Equal(t, 1500.5, stored.Amount)
	assert.Equal(t, "app-1", *stored.ApplicationID)
	assert.Equal(t, map[string]any{"id": "INV1"}, stored.Metadata)
}

func TestInitiateBankRedirectRoundsToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"10.005":  1001,
		"1.115":   112,
		"2500":    250000,
		"99.994":  9999,
		"0.015":   2,
		"1234.56": 123456,
	}
	for amount, minor := range cases {
		t.Run(amount, func(t *testing.T) {
			f := newOrchestratorFixture()
			req := baseRequest(amount)
			req.Phone = ""

			result, err := f.subject.InitiatePayment(context.Background(), entities.BankRedirectProvider, req)
			require.NoError(t, err)
			assert.Equal(t, minor, f.bank.initReq.AmountMinor)
			assert.Regexp(t, regexp.MustCompile(`^CERT-\d+-[A-Z0-9]{6}$`), result.ProviderReference)
			assert.Equal(t, "app-1", f.bank.initReq.Metadata["applicationId"])
		})
	}
}

func TestInitiateValidationHappensBeforeNetwork(t *testing.T) {
	f := newOrchestratorFixture()

	req := baseRequest("100")
	req.Phone = ""
	_, err := f.subject.InitiatePayment(context.Background(), entities.CardProvider, req)
	var validationErr *apperrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, f.card.calls)

	_, err = f.subject.InitiatePayment(context.Background(), entities.OrderTrackingProvider, req)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, f.order.initCalls)

	req = baseRequest("0")
	_, err = f.subject.InitiatePayment(context.Background(), entities.BankRedirectProvider, req)
	require.True(t, errors.As(err, &validationErr))

	req = baseRequest("0.004")
	_, err = f.subject.InitiatePayment(context.Background(), entities.BankRedirectProvider, req)
	require.True(t, errors.As(err, &validationErr))

	req = baseRequest("100")
	req.Email = "learner"
	_, err = f.subject.InitiatePayment(context.Background(), entities.BankRedirectProvider, req)
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, f.bank.initCalls)

	_, err = f.subject.InitiatePayment(context.Background(), entities.PaymentProvider("crypto"), baseRequest("100"))
	require.True(t, errors.As(err, &validationErr))
}

func TestInitiateBankRedirectDoesNotNeedPhone(t *testing.T) {
	f := newOrchestratorFixture()
	req := baseRequest("100")
	req.Phone = ""

	_, err := f.subject.InitiatePayment(context.Background(), entities.BankRedirectProvider, req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.bank.initCalls)
}

func TestInitiateOrderTrackingRecordsTrackingID(t *testing.T) {
	f := newOrchestratorFixture()

	result, err := f.subject.InitiatePayment(context.Background(), entities.OrderTrackingProvider, baseRequest("2500.50"))
	require.NoError(t, err)
	assert.Equal(t, "OT-1", result.ProviderReference)
	assert.Equal(t, "ORD-1", result.MerchantReference)
	assert.Equal(t, "KE", f.order.initReq.CountryCode)
	assert.Equal(t, "Certified Data Analyst", f.order.initReq.Description)

	stored, _ := f.payments.FindByReference(context.Background(), entities.OrderTrackingProvider, "OT-1")
	require.NotNil(t, stored)
	assert.Equal(t, "ORD-1", *stored.MerchantReference)
}

func TestInitiateSurfacesProviderError(t *testing.T) {
	f := newOrchestratorFixture()
	f.card.err = payment_types.InitiationFailed("intasend", "Phone number is not valid")

	_, err := f.subject.InitiatePayment(context.Background(), entities.CardProvider, baseRequest("100"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, payment_types.ErrPaymentInitiation))
	assert.Equal(t, 0, f.payments.count())
}

func TestInitiateReturnsRedirectWhenPersistenceFails(t *testing.T) {
	f := newOrchestratorFixture()
	f.payments.insertErr = errStoreDown

	result, err := f.subject.InitiatePayment(context.Background(), entities.CardProvider, baseRequest("100"))
	require.NoError(t, err)
	assert.True(t, result.PersistenceFailed)
	assert.Equal(t, "https://payment.intasend.com/checkout/INV1/express/", result.RedirectURL)
}

func TestInitiateToleratesAlreadyReconciledReference(t *testing.T) {
	f := newOrchestratorFixture()
	_, err := f.payments.UpsertByReference(context.Background(), entities.Payment{
		Provider:  entities.OrderTrackingProvider,
		Reference: "OT-1",
		Status:    "COMPLETED",
	})
	require.NoError(t, err)

	result, err := f.subject.InitiatePayment(context.Background(), entities.OrderTrackingProvider, baseRequest("100"))
	require.NoError(t, err)
	assert.False(t, result.PersistenceFailed)
	stored, _ := f.payments.FindByReference(context.Background(), entities.OrderTrackingProvider, "OT-1")
	assert.Equal(t, "COMPLETED", stored.Status)
}
