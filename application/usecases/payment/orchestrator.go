package payment_usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/repository"
	"certschool.io/application/utils"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/metrics"
	intasend_payment_processor "certschool.io/infrastructure/payments/intasend"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	pesapal_payment_processor "certschool.io/infrastructure/payments/pesapal"
	"certschool.io/infrastructure/validator"
)

// Orchestrator starts payments on one of the three providers and records
// them locally.
type Orchestrator struct {
	Card            CardGateway
	BankRedirect    BankRedirectGateway
	OrderTracking   OrderTrackingGateway
	Payments        PaymentStore
	ProviderTimeout time.Duration
}

func (o *Orchestrator) InitiatePayment(ctx context.Context, provider entities.PaymentProvider, req InitiatePaymentRequest) (*InitiatePaymentResult, error) {
	if err := validateInitiation(provider, &req); err != nil {
		return nil, err
	}

	var (
		result  *InitiatePaymentResult
		payment entities.Payment
		err     error
	)
	providerCtx, cancel := o.providerContext(ctx)
	defer cancel()
	start := time.Now()
	switch provider {
	case entities.CardProvider:
		result, payment, err = o.initiateCard(providerCtx, req)
	case entities.BankRedirectProvider:
		result, payment, err = o.initiateBankRedirect(providerCtx, req)
	case entities.OrderTrackingProvider:
		result, payment, err = o.initiateOrderTracking(providerCtx, req)
	}
	metrics.ProviderLatency.WithLabelValues(string(provider), "initiate").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PaymentInitiations.WithLabelValues(string(provider), metrics.OutcomeFailure).Inc()
		logger.Error("payment initiation failed", logger.LoggerOptions{
			Key:  "provider",
			Data: provider,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	metrics.PaymentInitiations.WithLabelValues(string(provider), metrics.OutcomeSuccess).Inc()

	payment.Provider = provider
	payment.Amount = utils.RoundMoney(req.Amount).InexactFloat64()
	payment.Currency = req.Currency
	payment.Email = req.Email
	payment.ApplicationID = req.ApplicationID
	payment.CertificationID = req.CertificationID
	payment.Status = result.Status
	if _, err = o.Payments.Insert(ctx, payment); err != nil && !errors.Is(err, repository.ErrPaymentExists) {
		result.PersistenceFailed = true
		metrics.PaymentPersistenceGaps.WithLabelValues(string(provider)).Inc()
		logger.Error("payment accepted by provider but not persisted", logger.LoggerOptions{
			Key:  "provider",
			Data: provider,
		}, logger.LoggerOptions{
			Key:  "reference",
			Data: payment.Reference,
		}, logger.LoggerOptions{
			Key:  "amount",
			Data: payment.Amount,
		}, logger.LoggerOptions{
			Key:  "currency",
			Data: payment.Currency,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: &apperrors.PersistenceError{Op: "insert payment", Reference: payment.Reference, Amount: payment.Amount, Err: err},
		})
	}
	return result, nil
}

func (o *Orchestrator) initiateCard(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, entities.Payment, error) {
	checkout, err := o.Card.Initiate(ctx, intasend_payment_processor.CheckoutRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		Amount:      utils.RoundMoney(req.Amount),
		Currency:    req.Currency,
	})
	if err != nil {
		return nil, entities.Payment{}, err
	}
	return &InitiatePaymentResult{
			Provider:          entities.CardProvider,
			RedirectURL:       checkout.URL,
			ProviderReference: checkout.InvoiceID,
			MerchantReference: checkout.APIRef,
			Status:            checkout.Status,
		}, entities.Payment{
			Reference:         checkout.InvoiceID,
			MerchantReference: utils.GetStringPointer(checkout.APIRef),
			Metadata:          checkout.Raw,
		}, nil
}

// initiateBankRedirect converts the base amount to minor units; the
// provider only accepts integers in the smallest currency unit.
func (o *Orchestrator) initiateBankRedirect(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, entities.Payment, error) {
	metadata := map[string]any{}
	if req.ApplicationID != nil {
		metadata["applicationId"] = *req.ApplicationID
	}
	if req.CertificationID != nil {
		metadata["certificationId"] = *req.CertificationID
	}
	if req.ProgramName != "" {
		metadata["programName"] = req.ProgramName
	}
	reference := utils.GenerateReference(paystack_payment_processor.ReferencePrefix, 6, utils.Now())
	initialized, err := o.BankRedirect.Initiate(ctx, paystack_payment_processor.InitializeRequest{
		Email:       req.Email,
		AmountMinor: utils.ToMinorUnits(req.Amount),
		Currency:    req.Currency,
		Reference:   reference,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, entities.Payment{}, err
	}
	return &InitiatePaymentResult{
			Provider:          entities.BankRedirectProvider,
			RedirectURL:       initialized.AuthorizationURL,
			ProviderReference: initialized.Reference,
			Status:            paystack_payment_processor.StatusPending,
		}, entities.Payment{
			Reference: initialized.Reference,
			Metadata: map[string]any{
				"authorization_url": initialized.AuthorizationURL,
				"access_code":       initialized.AccessCode,
				"reference":         initialized.Reference,
			},
		}, nil
}

func (o *Orchestrator) initiateOrderTracking(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, entities.Payment, error) {
	description := req.ProgramName
	if description == "" {
		description = "Certification payment"
	}
	order, err := o.OrderTracking.Initiate(ctx, pesapal_payment_processor.OrderRequest{
		Amount:      utils.RoundMoney(req.Amount),
		Currency:    req.Currency,
		Description: description,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		CountryCode: req.CountryCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		return nil, entities.Payment{}, err
	}
	return &InitiatePaymentResult{
			Provider:          entities.OrderTrackingProvider,
			RedirectURL:       order.RedirectURL,
			ProviderReference: order.OrderTrackingID,
			MerchantReference: order.MerchantReference,
			Status:            pesapal_payment_processor.StatusPending,
		}, entities.Payment{
			Reference:         order.OrderTrackingID,
			MerchantReference: utils.GetStringPointer(order.MerchantReference),
			Metadata: map[string]any{
				"order_tracking_id":  order.OrderTrackingID,
				"merchant_reference": order.MerchantReference,
				"redirect_url":       order.RedirectURL,
				"notification_id":    order.IPNID,
			},
		}, nil
}

func (o *Orchestrator) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.ProviderTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.ProviderTimeout)
}

func validateInitiation(provider entities.PaymentProvider, req *InitiatePaymentRequest) error {
	if !provider.IsValid() {
		return apperrors.NewValidationError(fmt.Errorf("unsupported payment provider %q", provider))
	}
	errs := []error{}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		errs = append(errs, errors.New("email is required"))
	} else if err := validator.ValidatorInstance.ValidateValue(req.Email, "email"); err != nil {
		errs = append(errs, errors.New("email is invalid"))
	}
	if !req.Amount.IsPositive() {
		errs = append(errs, errors.New("amount must be greater than zero"))
	} else if provider == entities.BankRedirectProvider && utils.ToMinorUnits(req.Amount) <= 0 {
		errs = append(errs, errors.New("amount is below the smallest currency unit"))
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if provider != entities.BankRedirectProvider && req.Phone == "" {
		errs = append(errs, errors.New("phoneNumber is required"))
	}
	if provider == entities.OrderTrackingProvider && strings.TrimSpace(req.CountryCode) == "" {
		errs = append(errs, errors.New("countryCode is required"))
	}
	if len(errs) != 0 {
		return apperrors.NewValidationError(errs...)
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	return nil
}
